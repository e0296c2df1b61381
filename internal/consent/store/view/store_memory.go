// Package view stores consent view instances between the page load and the
// user's action. Both implementations apply updates as compare-and-swap: the
// mutation sees the current view and is written only if nothing changed it in
// the meantime.
package view

import (
	"context"
	"sync"

	"consentflow/internal/consent/models"
	"consentflow/pkg/platform/sentinel"
	"consentflow/pkg/requestcontext"
)

// InMemoryStore keeps views in process memory. Suitable for a single instance.
type InMemoryStore struct {
	mu    sync.Mutex
	views map[string]*models.View
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{views: make(map[string]*models.View)}
}

func (s *InMemoryStore) Create(_ context.Context, v *models.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[v.ID]; ok {
		return sentinel.ErrConflict
	}
	s.views[v.ID] = v.Clone()
	return nil
}

// Get returns a copy of the view. Missing and expired views are both
// sentinel.ErrNotFound.
func (s *InMemoryStore) Get(ctx context.Context, id string) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// Update applies fn to a copy of the current view and stores the result. If
// fn returns an error nothing is written.
func (s *InMemoryStore) Update(ctx context.Context, id string, fn func(*models.View) error) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.views[id] = next
	return next.Clone(), nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, id)
	return nil
}

// Sweep drops expired views and returns how many were removed.
func (s *InMemoryStore) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := requestcontext.Now(ctx)
	removed := 0
	for id, v := range s.views {
		if v.Expired(now) {
			delete(s.views, id)
			removed++
		}
	}
	return removed
}

// lookup must be called with mu held.
func (s *InMemoryStore) lookup(ctx context.Context, id string) (*models.View, error) {
	v, ok := s.views[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if v.Expired(requestcontext.Now(ctx)) {
		delete(s.views, id)
		return nil, sentinel.ErrNotFound
	}
	return v, nil
}
