package memory

import (
	"context"
	"sync"

	"github.com/denis-svg/Crash-Game/discovery/domain"
)

// Store is the in-process registration store. It is lost on restart; the gateway keeps its own copy.
type Store struct {
	mu       sync.RWMutex
	services map[string][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{services: make(map[string][]string)}
}

func (s *Store) Register(_ context.Context, reg domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[reg.ServiceType] = append(s.services[reg.ServiceType], reg.ServiceURL)
	return nil
}

// Deregister drops every matching url. The emptied type stays known.
func (s *Store) Deregister(_ context.Context, reg domain.Registration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	urls, ok := s.services[reg.ServiceType]
	if !ok {
		return false, nil
	}
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != reg.ServiceURL {
			kept = append(kept, u)
		}
	}
	s.services[reg.ServiceType] = kept
	return true, nil
}

// Services returns a deep copy.
func (s *Store) Services(_ context.Context) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.services))
	for t, urls := range s.services {
		out[t] = append(make([]string, 0, len(urls)), urls...)
	}
	return out, nil
}
