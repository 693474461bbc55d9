// Package memstore keeps values in memory. Used by tests and --ephemeral runs.
package memstore

import (
	"sync"

	"github.com/Makepad-fr/tada/internal/store"
)

var _ store.Storage = (*Store)(nil)

type Store struct {
	mu       sync.Mutex
	data     map[string][]byte
	quota    int
	disabled bool
}

type Option func(*Store)

// WithQuota caps the total bytes of stored values; 0 means unlimited.
func WithQuota(bytes int) Option {
	return func(s *Store) { s.quota = bytes }
}

// Disabled makes every call fail with store.ErrUnavailable.
func Disabled() Option {
	return func(s *Store) { s.disabled = true }
}

func New(opts ...Option) *Store {
	s := &Store{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return nil, false, store.ErrUnavailable
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return store.ErrUnavailable
	}
	if s.quota > 0 && s.usedWithout(key)+len(value) > s.quota {
		return store.ErrQuotaExceeded
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return store.ErrUnavailable
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return 0, store.ErrUnavailable
	}
	return len(s.data), nil
}

func (s *Store) usedWithout(key string) int {
	n := 0
	for k, v := range s.data {
		if k != key {
			n += len(v)
		}
	}
	return n
}
