package dashboard

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/snelllabs/creativeboard/internal/models"
	"github.com/snelllabs/creativeboard/internal/store"
)

// ErrNoView means no refresh run has completed yet.
var ErrNoView = errors.New("no dashboard view available yet")

// Service is the read side: pure projections over the current view.
type Service struct{ st *store.ViewStore }

func NewService(st *store.ViewStore) *Service { return &Service{st: st} }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Overview is the full view plus the time it was computed.
type Overview struct {
	*models.DashboardView
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Overview() (Overview, error) {
	v, at, ok := s.st.Current()
	if !ok {
		return Overview{}, ErrNoView
	}
	return Overview{DashboardView: v, UpdatedAt: at}, nil
}

// Creatives filters the analytics list by status, project, performance and a
// free-text query over creative and account names, then paginates.
func (s *Service) Creatives(v url.Values) ([]models.CreativeAnalytics, error) {
	view, _, ok := s.st.Current()
	if !ok {
		return nil, ErrNoView
	}
	status := norm(v.Get("status"))
	project := strings.TrimSpace(v.Get("project"))
	perf := norm(v.Get("performance"))
	q := norm(v.Get("q"))
	limit := atoiDef(v.Get("limit"), 100)
	offset := atoiDef(v.Get("offset"), 0)

	rows := make([]models.CreativeAnalytics, 0, len(view.CreativeAnalytics))
	for _, c := range view.CreativeAnalytics {
		if status != "" && c.Status != status {
			continue
		}
		if project != "" && c.Project != project {
			continue
		}
		if perf != "" && c.Performance != perf {
			continue
		}
		if q != "" && !matchesQuery(c, q) {
			continue
		}
		rows = append(rows, c)
	}

	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return paginate(rows, limit, offset), nil
}

func (s *Service) Projects() (map[string]models.ProjectSummary, error) {
	view, _, ok := s.st.Current()
	if !ok {
		return nil, ErrNoView
	}
	return view.ProjectStats, nil
}

func matchesQuery(c models.CreativeAnalytics, q string) bool {
	if strings.Contains(norm(c.Creative), q) {
		return true
	}
	for _, a := range c.Accounts {
		if strings.Contains(norm(a), q) {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
