package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dtkav/binview/histogram"
)

// Config holds the chart settings. With neither Left nor Right set, the range
// is taken from the samples.
type Config struct {
	Left      *float64 `yaml:"left"`
	Right     *float64 `yaml:"right"`
	BinWidth  float64  `yaml:"bin_width"` // 0: split the range into Bins bins
	Bins      int      `yaml:"bins"`
	Strict    bool     `yaml:"strict"` // fail on samples outside the range instead of dropping them
	MaxBins   int      `yaml:"max_bins"`
	BarHeight int      `yaml:"bar_height"`
	LogPath   string   `yaml:"log_path"`
	Debug     bool     `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bins:      10,
		MaxBins:   histogram.DefaultMaxBins,
		BarHeight: 10,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the samples.
func (c Config) Validate() error {
	if c.BinWidth < 0 {
		return fmt.Errorf("bin width must not be negative, got %g", c.BinWidth)
	}
	if c.BinWidth == 0 && c.Bins < 1 {
		return fmt.Errorf("bins must be at least 1 when no bin width is set, got %d", c.Bins)
	}
	if c.BarHeight < 1 {
		return fmt.Errorf("bar height must be at least 1, got %d", c.BarHeight)
	}
	if c.MaxBins < 0 {
		return fmt.Errorf("max bins must not be negative, got %d", c.MaxBins)
	}
	if (c.Left == nil) != (c.Right == nil) {
		return errors.New("left and right must be set together")
	}
	if !c.AutoRange() && !(*c.Right > *c.Left) {
		return fmt.Errorf("right (%g) must be greater than left (%g)", *c.Right, *c.Left)
	}
	return nil
}

// AutoRange reports whether the range comes from the samples.
func (c Config) AutoRange() bool {
	return c.Left == nil && c.Right == nil
}

// SetRange fixes the range to [left, right).
func (c *Config) SetRange(left, right float64) {
	c.Left, c.Right = &left, &right
}

// RangeString describes the configured range for logs.
func (c Config) RangeString() string {
	if c.Left == nil || c.Right == nil {
		return "auto"
	}
	return fmt.Sprintf("[%g, %g)", *c.Left, *c.Right)
}

// ErrNoData is returned by Bounds when the range comes from the samples and
// none of them is a finite number.
var ErrNoData = errors.New("no data yet")

// Bounds resolves the range and bin width for a set of samples.
func (c Config) Bounds(values []float64) (left, right, binWidth float64, err error) {
	if c.Left != nil && c.Right != nil {
		left, right = *c.Left, *c.Right
	} else {
		var ok bool
		left, right, ok = histogram.AutoRange(values)
		if !ok {
			return 0, 0, 0, ErrNoData
		}
	}
	binWidth = c.BinWidth
	if binWidth == 0 && c.Bins > 0 {
		binWidth = (right - left) / float64(c.Bins)
	}
	return left, right, binWidth, nil
}

// HistogramOptions translates the settings into histogram.Compute options.
func (c Config) HistogramOptions() []histogram.Option {
	opts := []histogram.Option{histogram.WithMaxBins(c.MaxBins)}
	if c.Strict {
		opts = append(opts, histogram.WithPolicy(histogram.FailFast))
	}
	return opts
}
