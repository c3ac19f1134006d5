// Package preprocess prepares decoded images for corner detection:
// grayscale conversion, smoothing and the classic 3x3 edge filters.
package preprocess

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// gaussian3 is the 3x3 Gaussian used for ksize 3 with the default sigma.
var gaussian3 = [9]float64{
	1, 2, 1,
	2, 4, 2,
	1, 2, 1,
}

// Smoothing selects the denoising applied before detection.
// The zero value is the 3x3 Gaussian.
type Smoothing struct {
	Disabled bool    `yaml:"disabled"`
	Sigma    float64 `yaml:"sigma"` // > 0 switches to a full Gaussian blur
}

// Gray converts img to an 8-bit grayscale image anchored at (0,0).
func Gray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	toGray(g, img)
	return g
}

// GrayInto writes the grayscale version of img into dst, which must have
// the same size as img.
func GrayInto(dst *image.Gray, img image.Image) error {
	b := img.Bounds()
	if dst.Rect.Dx() != b.Dx() || dst.Rect.Dy() != b.Dy() {
		return fmt.Errorf("gray buffer %v does not match image %v", dst.Rect.Size(), b.Size())
	}
	toGray(dst, img)
	return nil
}

// toGray assumes dst and img have the same size.
func toGray(dst *image.Gray, img image.Image) {
	b := img.Bounds()
	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			s := src.PixOffset(b.Min.X, b.Min.Y+y)
			d := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
			copy(dst.Pix[d:d+b.Dx()], src.Pix[s:s+b.Dx()])
		}
		return
	}

	copyRed(dst, imaging.Grayscale(img))
}

// Smooth returns a denoised copy of g. When s is disabled g itself is
// returned.
func Smooth(g *image.Gray, s Smoothing) *image.Gray {
	if s.Disabled {
		return g
	}
	var out *image.NRGBA
	if s.Sigma > 0 {
		out = imaging.Blur(g, s.Sigma)
	} else {
		out = imaging.Convolve3x3(g, gaussian3, &imaging.ConvolveOptions{Normalize: true})
	}
	res := image.NewGray(out.Rect)
	copyRed(res, out)
	return res
}

// copyRed takes the R channel of an NRGBA whose channels are all equal.
func copyRed(dst *image.Gray, src *image.NRGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		d := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		s := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			dst.Pix[d+x] = src.Pix[s+4*x]
		}
	}
}
