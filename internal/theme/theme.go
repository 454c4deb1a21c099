package theme

import (
	"fmt"
	"strings"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	Default = Light
)

func Parse(value string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(Light):
		return Light, nil
	case string(Dark):
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme %q: want light or dark", value)
	}
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Label is the text of the button that switches away from t.
func (t Theme) Label() string {
	if t == Dark {
		return "Light Theme"
	}
	return "Dark Theme"
}

// Store persists the theme preference between runs.
type Store interface {
	Load() (Theme, error)
	Save(Theme) error
}

// Toggle flips the stored theme and writes it back. When the store cannot
// be read, fallback is flipped instead and the save replaces the bad state.
func Toggle(store Store, fallback Theme) (Theme, error) {
	current, err := store.Load()
	if err != nil {
		current = fallback
		if current == "" {
			current = Default
		}
	}
	next := current.Toggle()
	if err := store.Save(next); err != nil {
		return current, err
	}
	return next, nil
}

// MemoryStore keeps the preference in memory only.
type MemoryStore struct {
	Value Theme
}

func (m *MemoryStore) Load() (Theme, error) {
	if m.Value == "" {
		return Default, nil
	}
	return m.Value, nil
}

func (m *MemoryStore) Save(t Theme) error {
	m.Value = t
	return nil
}
