package manager

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/codec"
	"github.com/Makepad-fr/tada/internal/store"
)

// Save writes the whole collection as one blob. It is a no-op when the
// storage probe fails. A write error is logged and returned wrapped in
// ErrNotPersisted.
func (m *Manager) Save() error {
	if !store.Available(m.storage) {
		m.logger.Debug("storage unavailable, skipping save")
		return nil
	}
	blob, err := codec.Encode(m.projects)
	if err != nil {
		m.logger.Error("encode projects", "err", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	if err := m.storage.Set(m.key, blob); err != nil {
		m.logger.Error("save projects", "key", m.key, "err", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// Load replaces the collection with the stored one. It returns false with a
// nil error when nothing is stored or storage is unavailable, and false with
// an error when the stored blob cannot be read or rebuilt. The in-memory
// collection is untouched unless Load returns true.
func (m *Manager) Load() (bool, error) {
	if !store.Available(m.storage) {
		m.logger.Debug("storage unavailable, nothing loaded")
		return false, nil
	}
	blob, ok, err := m.storage.Get(m.key)
	if err != nil {
		return false, fmt.Errorf("read projects: %w", err)
	}
	if !ok {
		return false, nil
	}
	projects, err := codec.Decode(blob)
	if err != nil {
		return false, fmt.Errorf("decode projects: %w", err)
	}
	m.projects = projects
	return true, nil
}
