// Package catalog provides the immutable set of animations that can be played.
//
// A Catalog combines the animations bundled into the binary with those found
// in an optional user directory. Catalogs are never mutated: when the user
// directory changes a new Catalog is built and swapped into the UI model.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// descriptionsFile holds an optional name -> description table next to the
// animations it describes.
const descriptionsFile = "descriptions.json"

//go:embed animations
var bundled embed.FS

// ErrNotFound is returned by Get for a name that is not in the catalog.
var ErrNotFound = errors.New("animation not found")

// Asset is one recorded animation.
type Asset struct {
	Name        string
	Content     []byte
	Description string
}

// Catalog is an immutable, name-ordered set of assets.
type Catalog struct {
	assets map[string]Asset
	names  []string

	// Dir is the user directory merged into the catalog, if any.
	Dir string
	// Timestamp of catalog creation.
	BuiltAt time.Time
}

// New returns a catalog of assets. Later assets replace earlier ones with the
// same name.
func New(assets ...Asset) *Catalog {
	c := &Catalog{
		assets:  make(map[string]Asset, len(assets)),
		BuiltAt: time.Now(),
	}
	for _, a := range assets {
		c.assets[a.Name] = a
	}
	c.names = make([]string, 0, len(c.assets))
	for name := range c.assets {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Build returns the bundled animations merged with those in dir. An empty dir
// yields only the bundled set.
func Build(dir string) (*Catalog, error) {
	sub, err := fs.Sub(bundled, "animations")
	if err != nil {
		return nil, err
	}
	assets, err := Load(sub)
	if err != nil {
		return nil, fmt.Errorf("load bundled animations: %w", err)
	}
	if dir != "" {
		user, err := Load(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", dir, err)
		}
		assets = append(assets, user...)
	}
	c := New(assets...)
	c.Dir = dir
	return c, nil
}

// Load reads every animation at the top level of fsys. Hidden files,
// directories and the descriptions table are skipped.
func Load(fsys fs.FS) ([]Asset, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	descriptions, err := loadDescriptions(fsys)
	if err != nil {
		return nil, err
	}

	var assets []Asset
	for _, e := range entries {
		name := e.Name()
		if !isAssetName(name) || !e.Type().IsRegular() {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		assets = append(assets, Asset{
			Name:        name,
			Content:     content,
			Description: descriptions[name],
		})
	}
	return assets, nil
}

func loadDescriptions(fsys fs.FS) (map[string]string, error) {
	data, err := fs.ReadFile(fsys, descriptionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", descriptionsFile, err)
	}
	return out, nil
}

// isAssetName reports whether a file name can hold an animation.
func isAssetName(name string) bool {
	return name != descriptionsFile && !strings.HasPrefix(name, ".") && path.Base(name) == name
}

// Names returns the asset names in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of assets.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Get returns the named asset.
func (c *Catalog) Get(name string) (Asset, error) {
	a, ok := c.assets[name]
	if !ok {
		return Asset{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return a, nil
}

// Describe returns the description of name, or "" if it has none.
func (c *Catalog) Describe(name string) string {
	return c.assets[name].Description
}
