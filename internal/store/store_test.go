package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

// failing refuses every write with err and reports n stored keys.
type failing struct {
	err error
	n   int
}

func (f failing) Get(string) ([]byte, bool, error) { return nil, false, f.err }
func (f failing) Set(string, []byte) error         { return f.err }
func (f failing) Remove(string) error              { return f.err }
func (f failing) Len() (int, error)                { return f.n, nil }

func TestAvailable(t *testing.T) {
	tests := []struct {
		name string
		s    store.Storage
		want bool
	}{
		{name: "nil", s: nil, want: false},
		{name: "memory", s: memstore.New(), want: true},
		{name: "disabled", s: memstore.New(memstore.Disabled()), want: false},
		{name: "quota with existing data", s: failing{err: store.ErrQuotaExceeded, n: 1}, want: true},
		{name: "quota on empty medium", s: failing{err: store.ErrQuotaExceeded}, want: false},
		{name: "other error", s: failing{err: errors.New("boom"), n: 3}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Available(tt.s))
		})
	}
}

func TestAvailableLeavesNoProbeKey(t *testing.T) {
	s := memstore.New()
	assert.True(t, store.Available(s))
	n, err := s.Len()
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestAvailableFullMemStore(t *testing.T) {
	s := memstore.New(memstore.WithQuota(4))
	assert.False(t, store.Available(s), "empty medium with no room is unavailable")

	assert.NoError(t, s.Set("k", []byte("1234")))
	assert.True(t, store.Available(s), "full medium that already holds data counts as available")
}
