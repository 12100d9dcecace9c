// Package settings holds the user's persisted display preferences.
//
// The theme is the only preference that survives a session. It is read and
// written through a Store so the dashboard never touches browser state
// directly.
package settings

import (
	"strings"
	"sync"
)

// Theme is the dashboard colour scheme.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme applies when no preference has been stored.
const DefaultTheme = ThemeDark

// ParseTheme converts a stored value into a Theme.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == ThemeDark }

func (t Theme) String() string { return string(t) }

// Store persists a single raw preference value.
type Store interface {
	// Get returns the stored value and whether one exists.
	Get() (string, bool)
	// Set stores value.
	Set(value string) error
}

// Load reads the theme from store, falling back to fallback when nothing
// valid is stored.
func Load(store Store, fallback Theme) Theme {
	if store == nil {
		return fallback
	}
	raw, ok := store.Get()
	if !ok {
		return fallback
	}
	if t, ok := ParseTheme(raw); ok {
		return t
	}
	return fallback
}

// Save writes t to store.
func Save(store Store, t Theme) error {
	if store == nil {
		return nil
	}
	return store.Set(t.String())
}

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
	set   bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get implements Store.
func (m *MemoryStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.set
}

// Set implements Store.
func (m *MemoryStore) Set(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.set = true
	return nil
}
