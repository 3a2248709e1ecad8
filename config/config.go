// Package config loads game session settings from an optional YAML file
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fruit-drop/parameter"
)

var (
	ErrInvalidWorld  = errors.New("world dimensions must be positive")
	ErrInvalidTiming = errors.New("durations must be positive")
	ErrInvalidTier   = errors.New("initial unlocked tier must be non-negative")
	ErrOutsideWorld  = errors.New("drop height and danger line must lie inside the world")
	ErrWorldTooSmall = errors.New("world is narrower than the largest token")
)

// Config holds tunables a player may override without rebuilding
type Config struct {
	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`
	DropHeight  float64 `yaml:"drop_height"`

	TickInterval time.Duration `yaml:"tick_interval"`

	// Seed for the spawner, 0 = derive from clock
	Seed uint64 `yaml:"seed"`

	DangerLineY    float64       `yaml:"danger_line_y"`
	GracePeriod    time.Duration `yaml:"grace_period"`
	DangerDebounce time.Duration `yaml:"danger_debounce"`
	DangerTimeout  time.Duration `yaml:"danger_timeout"`
	DropCooldown   time.Duration `yaml:"drop_cooldown"`

	InitialUnlockedTier int `yaml:"initial_unlocked_tier"`

	// CatalogPath overrides the embedded catalog when set
	CatalogPath string `yaml:"catalog_path"`
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		WorldWidth:          parameter.WorldWidth,
		WorldHeight:         parameter.WorldHeight,
		DropHeight:          parameter.DropHeight,
		TickInterval:        parameter.TickInterval,
		DangerLineY:         parameter.DangerLineY,
		GracePeriod:         parameter.GracePeriod,
		DangerDebounce:      parameter.DangerDebounce,
		DangerTimeout:       parameter.DangerTimeout,
		DropCooldown:        parameter.DropCooldown,
		InitialUnlockedTier: parameter.InitialUnlockedTier,
	}
}

// Load reads path over the defaults, empty path returns defaults
// Keys absent from the file keep their default value
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return ErrInvalidWorld
	}
	if c.TickInterval <= 0 || c.DangerDebounce <= 0 || c.DangerTimeout <= 0 || c.DropCooldown <= 0 {
		return ErrInvalidTiming
	}
	if c.GracePeriod < 0 {
		return ErrInvalidTiming
	}
	if c.InitialUnlockedTier < 0 {
		return ErrInvalidTier
	}
	if !inHeight(c.DropHeight, c.WorldHeight) || !inHeight(c.DangerLineY, c.WorldHeight) {
		return ErrOutsideWorld
	}
	return nil
}

func inHeight(y, height float64) bool {
	return y >= 0 && y < height
}

// CheckFit rejects a world that cannot hold a token of the given diameter between its walls
func (c *Config) CheckFit(diameter float64) error {
	if c.WorldWidth < diameter {
		return fmt.Errorf("%w: width %g, largest diameter %g", ErrWorldTooSmall, c.WorldWidth, diameter)
	}
	return nil
}
