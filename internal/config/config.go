package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"mapoverlay/internal/overlay"
)

// Config holds all application configuration.
type Config struct {
	Marker  MarkerConfig  `mapstructure:"marker"`
	Popover PopoverConfig `mapstructure:"popover"`
	Insets  InsetsConfig  `mapstructure:"insets"`
	Log     LogConfig     `mapstructure:"log"`
}

// MarkerConfig sizes the marker drawn for each annotation, in terminal cells.
type MarkerConfig struct {
	WidthCells  int  `mapstructure:"width_cells"`
	HeightCells int  `mapstructure:"height_cells"`
	HitSlop     int  `mapstructure:"hit_slop"`
	ShowCounts  bool `mapstructure:"show_counts"`
}

// PopoverConfig holds popover layout constants, in terminal cells.
type PopoverConfig struct {
	Padding        int `mapstructure:"padding"`
	MinWidth       int `mapstructure:"min_width"`
	RowHeight      int `mapstructure:"row_height"`
	Chrome         int `mapstructure:"chrome"`
	AboveThreshold int `mapstructure:"above_threshold"`
}

// InsetsConfig reserves map-area margins the popover must not cover.
type InsetsConfig struct {
	Top    int `mapstructure:"top"`
	Left   int `mapstructure:"left"`
	Bottom int `mapstructure:"bottom"`
	Right  int `mapstructure:"right"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Terminal cells are split into 2x4 dots; viewport units are dots.
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// ErrMarkerTooSmall is returned when the marker is too narrow to cluster by.
var ErrMarkerTooSmall = errors.New("marker too small for clustering")

// Load reads configuration from .env, an optional config file and
// MAPOVERLAY_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()

	v.SetDefault("marker.width_cells", 5)
	v.SetDefault("marker.height_cells", 2)
	v.SetDefault("marker.hit_slop", 1)
	v.SetDefault("marker.show_counts", true)
	v.SetDefault("popover.padding", 1)
	v.SetDefault("popover.min_width", 16)
	v.SetDefault("popover.row_height", 1)
	v.SetDefault("popover.chrome", 3)
	v.SetDefault("popover.above_threshold", 6)
	v.SetDefault("insets.top", 0)
	v.SetDefault("insets.left", 0)
	v.SetDefault("insets.bottom", 0)
	v.SetDefault("insets.right", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "mapoverlay.log")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("MAPOVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the engine cannot work with.
func (c *Config) Validate() error {
	if c.CellSize() <= overlay.MinCellSize {
		return fmt.Errorf("%w: width %d cells is %.0f dots, need more than %.0f",
			ErrMarkerTooSmall, c.Marker.WidthCells, c.CellSize(), overlay.MinCellSize)
	}
	if c.Marker.HeightCells < 1 {
		return fmt.Errorf("marker height must be at least 1 cell, got %d", c.Marker.HeightCells)
	}
	if c.Popover.RowHeight < 1 {
		return fmt.Errorf("popover row height must be at least 1 cell, got %d", c.Popover.RowHeight)
	}
	return nil
}

// CellSize is the clustering threshold: the marker width in dots.
func (c *Config) CellSize() float64 {
	return float64(c.Marker.WidthCells * DotsPerCellX)
}

// Layout converts the popover section to engine units (cells).
func (c *Config) Layout() overlay.PopoverConfig {
	return overlay.PopoverConfig{
		Padding:        float64(c.Popover.Padding),
		MinWidth:       float64(c.Popover.MinWidth),
		RowHeight:      float64(c.Popover.RowHeight),
		Chrome:         float64(c.Popover.Chrome),
		AboveThreshold: float64(c.Popover.AboveThreshold),
	}
}

func (c *Config) SafeInsets() overlay.Insets {
	return overlay.Insets{
		Top:    float64(c.Insets.Top),
		Left:   float64(c.Insets.Left),
		Bottom: float64(c.Insets.Bottom),
		Right:  float64(c.Insets.Right),
	}
}
