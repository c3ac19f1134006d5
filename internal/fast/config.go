package fast

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid detector config")

const (
	DefaultThreshold = 40
	DefaultMinRun    = 12
)

// Config holds the tunable detector parameters.
type Config struct {
	Threshold int `yaml:"threshold"`
	MinRun    int `yaml:"min_run"`
	// WrapAround treats the ring as closed. Off by default: the classic
	// detector only counts runs within a single pass from index 0.
	WrapAround bool `yaml:"wrap_around"`
}

// DefaultConfig returns threshold 40, minimum run 12, no wrap-around.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, MinRun: DefaultMinRun}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold %d is negative", ErrInvalidConfig, c.Threshold)
	}
	if c.MinRun < 1 || c.MinRun > RingSize {
		return fmt.Errorf("%w: min run %d outside [1,%d]", ErrInvalidConfig, c.MinRun, RingSize)
	}
	return nil
}

func (c Config) run(center int, samples [RingSize]int) Class {
	if c.WrapAround {
		return RunWrapped(center, samples, c.Threshold, c.MinRun)
	}
	return Run(center, samples, c.Threshold, c.MinRun)
}
