package dashboard

import (
	"context"
	"sync"
)

// Store holds the holiday record cache shared by the selector, the report
// view and the lifecycle manager. It follows a refresh-after-write policy:
// every mutation triggers a full re-read, never an in-place patch, so the
// server stays the single serialization point.
type Store struct {
	client *Client

	mu       sync.Mutex
	records  []Holiday
	watchers []func()
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Refresh replaces the cached record set with the server's current list and
// notifies every watcher.
func (s *Store) Refresh(ctx context.Context) error {
	records, err := s.client.Holidays(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	watchers := make([]func(), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, fn := range watchers {
		fn()
	}
	return nil
}

// Records returns a copy of the cached record set.
func (s *Store) Records() []Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Holiday, len(s.records))
	copy(out, s.records)
	return out
}

// Get looks up a cached record by id.
func (s *Store) Get(id int64) (Holiday, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.records {
		if h.ID == id {
			return h, true
		}
	}
	return Holiday{}, false
}

// Watch registers a callback invoked after every successful Refresh.
func (s *Store) Watch(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}
