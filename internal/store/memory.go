package store

import (
	"sync"
	"time"

	"github.com/snelllabs/creativeboard/internal/models"
)

// ViewStore holds the last successfully computed dashboard view. A refresh
// run replaces the whole view atomically; a failed run never touches it, so
// readers always see the last-known-good state.
type ViewStore struct {
	mu        sync.RWMutex
	view      *models.DashboardView
	updatedAt time.Time
}

func NewViewStore() *ViewStore {
	return &ViewStore{}
}

func (s *ViewStore) Swap(v *models.DashboardView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	s.updatedAt = time.Now()
}

// Current returns the view, its update time, and whether a view exists yet.
func (s *ViewStore) Current() (*models.DashboardView, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, s.updatedAt, s.view != nil
}
