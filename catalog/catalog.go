// Package catalog holds the fixed tier table: radius and point value per token type
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed fruits.yaml
var defaultCatalogYAML []byte

// Sentinel errors
var (
	ErrEmptyCatalog = errors.New("catalog has no entries")
	ErrBadRadius    = errors.New("catalog entry size must be positive")
	ErrBadPoints    = errors.New("catalog entry points must be non-negative")
	ErrTierOrder    = errors.New("catalog entries must be ordered by ascending size")
)

// TokenType is one tier of the merge progression
type TokenType struct {
	Tier   int     `yaml:"-"`
	Name   string  `yaml:"name"`
	Glyph  string  `yaml:"glyph"`
	Size   float64 `yaml:"size"` // Diameter in world units
	Points int     `yaml:"points"`
	Color  string  `yaml:"color"` // #rrggbb, empty = renderer default
}

// Radius returns half the diameter
func (t TokenType) Radius() float64 {
	return t.Size / 2
}

// GlyphRune returns the first rune of Glyph, '●' when unset
func (t TokenType) GlyphRune() rune {
	r, size := utf8.DecodeRuneInString(t.Glyph)
	if size == 0 || r == utf8.RuneError {
		return '●'
	}
	return r
}

// Catalog is an immutable, validated tier table indexed by tier
type Catalog struct {
	types []TokenType
}

// Parse decodes and validates a YAML sequence of token types
func Parse(data []byte) (*Catalog, error) {
	var entries []TokenType
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(entries)
}

// New validates entries and assigns tiers by position
func New(entries []TokenType) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	types := make([]TokenType, len(entries))
	for i, e := range entries {
		if e.Size <= 0 {
			return nil, fmt.Errorf("tier %d (%s): %w", i, e.Name, ErrBadRadius)
		}
		if e.Points < 0 {
			return nil, fmt.Errorf("tier %d (%s): %w", i, e.Name, ErrBadPoints)
		}
		if i > 0 && e.Size <= entries[i-1].Size {
			return nil, fmt.Errorf("tier %d (%s): %w", i, e.Name, ErrTierOrder)
		}
		e.Tier = i
		types[i] = e
	}

	return &Catalog{types: types}, nil
}

// Load reads a catalog file, empty path returns the embedded default
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded reference catalog
// Panics if the embedded file is invalid, which is a build defect
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Errorf("embedded catalog: %w", err))
	}
	return c
}

// Len returns the number of tiers
func (c *Catalog) Len() int {
	return len(c.types)
}

// MaxTier returns the highest valid tier index
func (c *Catalog) MaxTier() int {
	return len(c.types) - 1
}

// Valid reports whether tier indexes an entry
func (c *Catalog) Valid(tier int) bool {
	return tier >= 0 && tier < len(c.types)
}

// Type returns the entry for tier
// Out-of-range tier is a programmer error and panics
func (c *Catalog) Type(tier int) TokenType {
	if !c.Valid(tier) {
		panic(fmt.Sprintf("catalog: tier %d out of range [0,%d)", tier, len(c.types)))
	}
	return c.types[tier]
}

// Radius returns the radius for tier
func (c *Catalog) Radius(tier int) float64 {
	return c.Type(tier).Radius()
}

// Points returns the point value for tier
func (c *Catalog) Points(tier int) int {
	return c.Type(tier).Points
}
