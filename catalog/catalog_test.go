package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 12 {
		t.Fatalf("Expected 12 tiers, got %d", c.Len())
	}
	if c.MaxTier() != 11 {
		t.Errorf("Expected max tier 11, got %d", c.MaxTier())
	}

	wantSizes := []float64{50, 60, 70, 84, 100, 116, 132, 150, 168, 188, 210, 232}
	wantPoints := []int{1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 66, 78}
	for tier := 0; tier < c.Len(); tier++ {
		tt := c.Type(tier)
		if tt.Tier != tier {
			t.Errorf("tier %d: Tier field = %d", tier, tt.Tier)
		}
		if c.Radius(tier) != wantSizes[tier]/2 {
			t.Errorf("tier %d: radius = %f, want %f", tier, c.Radius(tier), wantSizes[tier]/2)
		}
		if c.Points(tier) != wantPoints[tier] {
			t.Errorf("tier %d: points = %d, want %d", tier, c.Points(tier), wantPoints[tier])
		}
		if tt.GlyphRune() == '●' {
			t.Errorf("tier %d: expected an emoji glyph", tier)
		}
	}
}

func TestTypeOutOfRangePanics(t *testing.T) {
	c := Default()
	for _, tier := range []int{-1, c.Len()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Type(%d) should panic", tier)
				}
			}()
			c.Type(tier)
		}()
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []TokenType
		wantErr error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"zero size", []TokenType{{Name: "a", Size: 0}}, ErrBadRadius},
		{"negative points", []TokenType{{Name: "a", Size: 10, Points: -1}}, ErrBadPoints},
		{"not ascending", []TokenType{{Name: "a", Size: 20}, {Name: "b", Size: 20}}, ErrTierOrder},
		{"ok", []TokenType{{Name: "a", Size: 10}, {Name: "b", Size: 20, Points: 2}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	data := []byte("- name: pea\n  size: 10\n  points: 1\n- name: bean\n  size: 16\n  points: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Expected 2 tiers, got %d", c.Len())
	}
	if c.Radius(1) != 8 {
		t.Errorf("Expected radius 8, got %f", c.Radius(1))
	}
	if c.Type(0).GlyphRune() != '●' {
		t.Errorf("Expected fallback glyph for entry without glyph")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if c.Len() != Default().Len() {
		t.Errorf("Expected default catalog")
	}
}
