package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/fastcorners/internal/fast"
	"github.com/ivlev/fastcorners/internal/preprocess"
)

type Config struct {
	InputPath    string               `yaml:"input"`
	OutputDir    string               `yaml:"output_dir"`
	ReportPath   string               `yaml:"report"`
	Variant      string               `yaml:"detector"`
	Detector     fast.Config          `yaml:"fast"`
	Smoothing    preprocess.Smoothing `yaml:"smoothing"`
	Workers      int                  `yaml:"workers"`       // frames processed in parallel
	SweepWorkers int                  `yaml:"sweep_workers"` // column stripes per frame
	DisplayScale float64              `yaml:"display_scale"`
	MarkerRadius float64              `yaml:"marker_radius"`
	DPI          int                  `yaml:"dpi"`
	QRSize       int                  `yaml:"qr_size"`
	EdgeFilters  []string             `yaml:"edge_filters"`
	NoOverlay    bool                 `yaml:"no_overlay"`
	ShowStats    bool                 `yaml:"show_stats"`
	BuildVersion string               `yaml:"-"`
}

// Default returns the settings of the classic detector: threshold 40,
// run 12, 3x3 Gaussian, half-size display.
func Default() *Config {
	return &Config{
		OutputDir:    "output",
		Variant:      "fast",
		Detector:     fast.DefaultConfig(),
		DisplayScale: 0.5,
		MarkerRadius: 1,
		DPI:          150,
		QRSize:       512,
	}
}

// Load reads a YAML file over the defaults. The result is not validated:
// callers apply their overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// StripeWorkers returns the per-frame sweep parallelism given the number of
// frames processed at once. An explicit SweepWorkers wins. Otherwise frames
// running in parallel sweep sequentially, and a lone frame gets every CPU (0).
func (c *Config) StripeWorkers(frameWorkers int) int {
	if c.SweepWorkers > 0 {
		return c.SweepWorkers
	}
	if frameWorkers > 1 {
		return 1
	}
	return 0
}

// Validate checks every option that has a restricted range.
func (c *Config) Validate() error {
	if err := c.Detector.Validate(); err != nil {
		return err
	}
	if c.DisplayScale < 0 {
		return fmt.Errorf("display scale %v is negative", c.DisplayScale)
	}
	if c.MarkerRadius <= 0 {
		return fmt.Errorf("marker radius must be positive, got %v", c.MarkerRadius)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("qr size must be positive, got %d", c.QRSize)
	}
	if c.Smoothing.Sigma < 0 {
		return errors.New("smoothing sigma is negative")
	}
	for _, name := range c.EdgeFilters {
		if _, err := preprocess.FilterByName(name); err != nil {
			return err
		}
	}
	return nil
}
