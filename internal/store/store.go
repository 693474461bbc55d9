// Package store defines the key/value medium the project manager persists to.
package store

import "errors"

var (
	// ErrUnavailable means the medium is disabled or cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded means the medium refused a write for lack of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Storage is a flat key/value medium. Set writes the whole value in one call.
type Storage interface {
	// Get returns the value under key and whether it was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Len reports how many keys are stored.
	Len() (int, error)
}

const probeKey = "__storage_test__"

// Available probes s with a throwaway write and remove. A quota error still
// counts as available when the medium already holds data.
func Available(s Storage) bool {
	if s == nil {
		return false
	}
	err := s.Set(probeKey, []byte(probeKey))
	if err == nil {
		err = s.Remove(probeKey)
	}
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		return false
	}
	n, lenErr := s.Len()
	return lenErr == nil && n > 0
}
