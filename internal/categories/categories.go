// internal/categories/categories.go
//
// Category catalogue for the memory game.
//
// Responsibilities:
//   - Parse a YAML list of named value pools.
//   - Load a user-supplied file, or fall back to the embedded defaults.
//   - Look categories up by name or by 1-based menu number.
//
// File format:
//   - name: colors
//     values: [red, blue, green]
//
// Constraints:
//   • Names are lowercased, trimmed, non-empty and unique.
//   • Values are trimmed; blank values are dropped.
//   • Every category keeps at least one value.
//   • Order in the file is the menu order.

package categories

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/grrosti/memory-game/assets"
)

var (
	ErrEmptyCatalog = errors.New("categories: catalogue is empty")
	ErrNotFound     = errors.New("categories: no such category")
)

// Category is a named pool of card values.
type Category struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Catalog is an ordered set of categories.
type Catalog struct {
	list  []Category
	index map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalogue, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		raw, err := assets.DefaultCategories()
		if err != nil {
			defaultErr = err
			return
		}
		defaultCat, defaultErr = Parse(raw)
	})
	return defaultCat, defaultErr
}

// Load reads path when it is set, otherwise returns the embedded defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads and parses a catalogue file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and normalizes a YAML catalogue.
func Parse(raw []byte) (*Catalog, error) {
	var list []Category
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	if len(list) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{index: make(map[string]int, len(list))}
	for i, cat := range list {
		name := normalizeName(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("categories: entry %d has no name", i+1)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("categories: duplicate name %q", name)
		}
		values := normalizeValues(cat.Values)
		if len(values) == 0 {
			return nil, fmt.Errorf("categories: %q has no values", name)
		}
		c.index[name] = len(c.list)
		c.list = append(c.list, Category{Name: name, Values: values})
	}
	return c, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Len is the number of categories.
func (c *Catalog) Len() int { return len(c.list) }

// Names lists category names in menu order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.list))
	for i, cat := range c.list {
		out[i] = cat.Name
	}
	return out
}

// Lookup finds a category by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Category, error) {
	i, ok := c.index[normalizeName(name)]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.list[i], nil
}

// At returns the category shown as menu entry n (1-based).
func (c *Catalog) At(n int) (Category, error) {
	if n < 1 || n > len(c.list) {
		return Category{}, fmt.Errorf("%w: choice %d not in 1-%d", ErrNotFound, n, len(c.list))
	}
	return c.list[n-1], nil
}
