package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultDir is the per-project animation directory looked up from the
// working directory upwards.
const defaultDir = ".vtplay"

// Discover finds the user animation directory.
// Priority: VTPLAY_DIR env var > .vtplay in CWD > walk up parents.
// It returns "" without error when no directory exists.
func Discover() (string, error) {
	if env := os.Getenv("VTPLAY_DIR"); env != "" {
		info, err := os.Stat(env)
		if err != nil {
			return "", fmt.Errorf("VTPLAY_DIR=%q: %w", env, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("VTPLAY_DIR=%q: not a directory", env)
		}
		return env, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

// Open discovers the user directory (unless dir is given) and builds the
// catalog. The returned path is the directory merged in, or "".
func Open(dir string) (*Catalog, string, error) {
	if dir == "" {
		found, err := Discover()
		if err != nil {
			return nil, "", err
		}
		dir = found
	} else if info, err := os.Stat(dir); err != nil {
		return nil, "", fmt.Errorf("animation dir: %w", err)
	} else if !info.IsDir() {
		return nil, "", fmt.Errorf("animation dir %q: not a directory", dir)
	}

	c, err := Build(dir)
	if err != nil {
		return nil, "", err
	}
	return c, dir, nil
}
