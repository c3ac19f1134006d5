package analyzer

import (
	"fmt"

	"github.com/ivlev/fastcorners/internal/fast"
	"github.com/ivlev/fastcorners/internal/preprocess"
)

// Options configure the detector built by NewDetector.
type Options struct {
	Config    fast.Config
	Smoothing preprocess.Smoothing
	Workers   int
}

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string, opts Options) (Detector, error) {
	switch variant {
	case "fast", "":
	case "fast-wrap":
		opts.Config.WrapAround = true
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return &FASTDetector{
		Config:    opts.Config,
		Smoothing: opts.Smoothing,
		Workers:   opts.Workers,
	}, nil
}
