// Package overlay draws detected corners on a display copy of the source
// image and scales it for viewing.
package overlay

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/ivlev/fastcorners/internal/analyzer"
	"github.com/ivlev/fastcorners/internal/fast"
)

// Style controls marker appearance.
type Style struct {
	Radius    float64
	LineWidth float64
	Bright    color.Color // marker for runs brighter than the center
	Dark      color.Color // marker for runs darker than the center
}

// DefaultStyle draws 1px red circles for both kinds of corner.
func DefaultStyle() Style {
	red := color.RGBA{R: 255, A: 255}
	return Style{Radius: 1, LineWidth: 1, Bright: red, Dark: red}
}

// Draw returns a copy of img with a circle around each corner. img is not
// modified.
func Draw(img image.Image, corners []analyzer.Corner, st Style) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(st.LineWidth)
	for _, c := range corners {
		if c.Class == fast.Bright {
			dc.SetColor(st.Bright)
		} else {
			dc.SetColor(st.Dark)
		}
		dc.DrawCircle(float64(c.Point.X)+0.5, float64(c.Point.Y)+0.5, st.Radius)
		dc.Stroke()
	}
	return dc.Image()
}

// Scale resizes img by factor. Factors <= 0 or equal to 1 return img.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
