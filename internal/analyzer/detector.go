package analyzer

import (
	"context"
	"image"

	"github.com/ivlev/fastcorners/internal/fast"
)

// Corner is a detected candidate. Point is relative to the image bounds
// origin; Class tells whether the qualifying run was brighter or darker
// than the center.
type Corner struct {
	Point image.Point
	Class fast.Class
}

// Detector is the interface for corner detection strategies
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Corner, error)
}

// Points strips the classes from corners.
func Points(corners []Corner) []image.Point {
	pts := make([]image.Point, len(corners))
	for i, c := range corners {
		pts[i] = c.Point
	}
	return pts
}
