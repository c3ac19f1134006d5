package analyzer

import (
	"context"
	"fmt"
	"image"

	"github.com/ivlev/fastcorners/internal/fast"
	"github.com/ivlev/fastcorners/internal/preprocess"
	"github.com/ivlev/fastcorners/internal/system"
)

// FASTDetector finds corner candidates with the 16-point ring test
type FASTDetector struct {
	Config    fast.Config
	Smoothing preprocess.Smoothing
	Workers   int // column stripes per image, <= 0 for one per CPU
}

// NewFASTDetector creates a detector with threshold 40 and minimum run 12
func NewFASTDetector() *FASTDetector {
	return &FASTDetector{Config: fast.DefaultConfig()}
}

// Detect converts img to gray, smooths it and sweeps it for candidates
func (d *FASTDetector) Detect(ctx context.Context, img image.Image) ([]Corner, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}

	// Step 1: grayscale into a pooled buffer
	b := img.Bounds()
	gray := system.GetGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	defer system.PutGray(gray)
	if err := preprocess.GrayInto(gray, img); err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}

	// Step 2: denoise
	smooth := preprocess.Smooth(gray, d.Smoothing)

	// Step 3: ring test over all interior pixels
	buf := fast.FromGray(smooth)
	pts, err := fast.DetectParallel(ctx, buf, d.Config, d.Workers, nil)
	if err != nil {
		return nil, err
	}

	corners := make([]Corner, len(pts))
	for i, p := range pts {
		corners[i] = Corner{Point: p, Class: fast.ClassAt(buf, d.Config, p)}
	}
	return corners, nil
}
