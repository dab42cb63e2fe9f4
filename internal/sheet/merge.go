package sheet

import (
	"regexp"
	"sort"

	"github.com/snelllabs/creativeboard/internal/models"
)

// Performance tier thresholds. Fixed, not configurable.
const (
	highTotalUsers    = 200
	mediumTotalUsers  = 50
	lowAccountCount   = 3
	lowAvgUsersPerDay = 2.0
)

var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9]`)

// MergeProjects combines per-project aggregates into one dashboard view.
// Projects are merged in sorted key order, so the result is deterministic:
// a creative name appearing in several projects keeps the history of the
// last merged project (last-write-wins), while its position in the output
// follows its first appearance.
func MergeProjects(aggregates map[string]*models.ProjectAggregate) *models.DashboardView {
	keys := make([]string, 0, len(aggregates))
	for k := range aggregates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make(map[string]*models.CreativeHistory)
	var creativeOrder []string
	var allAccounts []string
	seenAccounts := make(map[string]struct{})
	var allSlots []models.ActiveSlot
	combinedLatestDate := ""

	for _, k := range keys {
		agg := aggregates[k]
		for _, creative := range agg.CreativeOrder {
			if _, ok := merged[creative]; !ok {
				creativeOrder = append(creativeOrder, creative)
			}
			merged[creative] = agg.CreativeHistory[creative]
		}
		for _, a := range agg.Accounts {
			if _, ok := seenAccounts[a]; !ok {
				seenAccounts[a] = struct{}{}
				allAccounts = append(allAccounts, a)
			}
		}
		allSlots = append(allSlots, agg.ActiveSlots...)
		if agg.LatestDate > combinedLatestDate {
			combinedLatestDate = agg.LatestDate
		}
	}

	analytics := make([]models.CreativeAnalytics, 0, len(creativeOrder))
	for _, creative := range creativeOrder {
		h := merged[creative]

		currentUsers := 0
		var currentAccounts []models.CurrentAccount
		for _, s := range allSlots {
			if s.Creative != creative {
				continue
			}
			currentUsers += s.Users
			currentAccounts = append(currentAccounts, models.CurrentAccount{
				Account: s.Account,
				Project: s.Project,
				Users:   s.Users,
			})
		}

		status := models.StatusFree
		if len(currentAccounts) > 0 {
			status = models.StatusActive
		} else {
			currentUsers = 0
		}

		analytics = append(analytics, models.CreativeAnalytics{
			ID:              slugPattern.ReplaceAllString(creative, "_"),
			Creative:        creative,
			Status:          status,
			TotalUsers:      h.TotalUsers,
			CurrentUsers:    currentUsers,
			DaysActive:      h.DaysActive,
			Accounts:        h.Accounts,
			CurrentAccounts: currentAccounts,
			LastActiveDate:  h.LastActiveDate,
			AvgUsersPerDay:  h.AvgUsersPerDay,
			Performance:     classifyPerformance(h.TotalUsers, len(h.Accounts), h.AvgUsersPerDay),
			Project:         h.Project,
		})
	}

	// Active creatives first, busiest first; free creatives ranked by their
	// lifetime totals. Stable so equal entries keep first-seen order.
	sort.SliceStable(analytics, func(i, j int) bool {
		a, b := analytics[i], analytics[j]
		if a.Status != b.Status {
			return a.Status == models.StatusActive
		}
		if a.Status == models.StatusActive {
			return a.CurrentUsers > b.CurrentUsers
		}
		return a.TotalUsers > b.TotalUsers
	})

	projectStats := make(map[string]models.ProjectSummary, len(keys))
	for _, k := range keys {
		var ps models.ProjectSummary
		for _, c := range analytics {
			if c.Project != k {
				continue
			}
			ps.TotalCreatives++
			ps.TotalUsers += c.TotalUsers
			if c.Status == models.StatusActive {
				ps.ActiveCreatives++
			}
		}
		for _, s := range allSlots {
			if s.Project == k {
				ps.CurrentUsers += s.Users
			}
		}
		ps.TotalAccounts = len(aggregates[k].Accounts)
		projectStats[k] = ps
	}

	var summary models.GlobalSummary
	summary.TotalCreatives = len(analytics)
	for _, c := range analytics {
		summary.TotalUsersAllTime += c.TotalUsers
		if c.Status == models.StatusActive {
			summary.ActiveCreatives++
			summary.TotalCurrentUsers += c.CurrentUsers
		}
	}
	summary.FreeCreatives = summary.TotalCreatives - summary.ActiveCreatives
	summary.TotalAccounts = len(allAccounts)
	for _, k := range keys {
		summary.AccountColumns += aggregates[k].AccountColumnCount
	}
	if summary.TotalCreatives > 0 {
		summary.AvgUsersPerCreative = round1(float64(summary.TotalUsersAllTime) / float64(summary.TotalCreatives))
	}

	return &models.DashboardView{
		LatestDate:        combinedLatestDate,
		CreativeAnalytics: analytics,
		AllAccounts:       allAccounts,
		ActiveSlots:       allSlots,
		ProjectStats:      projectStats,
		Summary:           summary,
	}
}

func classifyPerformance(totalUsers, accountCount int, avgUsersPerDay float64) string {
	switch {
	case totalUsers > highTotalUsers:
		return models.PerformanceHigh
	case totalUsers > mediumTotalUsers:
		return models.PerformanceMedium
	case accountCount > lowAccountCount && avgUsersPerDay < lowAvgUsersPerDay:
		return models.PerformanceLow
	default:
		return models.PerformanceMedium
	}
}
