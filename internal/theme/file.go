package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const StateFileName = "state.json"

type state struct {
	Theme Theme `json:"theme"`
}

// FileStore keeps the theme in a small JSON file, the terminal counterpart
// of a browser's local storage entry.
type FileStore struct {
	Path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Path: filepath.Join(dir, StateFileName)}
}

// Load returns the saved theme, or Default when nothing was saved yet.
func (f *FileStore) Load() (Theme, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default, nil
		}
		return Default, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Default, nil
	}

	var st state
	if err := json5.Unmarshal(data, &st); err != nil {
		return Default, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	if st.Theme == "" {
		return Default, nil
	}
	return Parse(string(st.Theme))
}

func (f *FileStore) Save(t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state{Theme: t}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, append(data, '\n'), 0o644)
}
