package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store is the local state directory for one user (TUI state and similar
// small files). It never holds gallery content.
type Store struct {
	Dir string
}

// StateDir resolves the default state directory.
//
// GALLERY_STATE_DIR overrides it (keeps unit tests from touching ~/.gallery).
func StateDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("GALLERY_STATE_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gallery"), nil
}

// Default returns a Store rooted at StateDir.
func Default() (Store, error) {
	dir, err := StateDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}
