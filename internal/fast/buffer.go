package fast

import (
	"fmt"
	"image"
)

// Buffer is a read-only view of single-byte intensities stored row-major.
// The detector never writes to Pix.
type Buffer struct {
	Pix    []uint8
	Stride int
	Width  int
	Height int
}

// NewBuffer wraps pix as a width x height buffer with no row padding.
func NewBuffer(width, height int, pix []uint8) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative buffer size %dx%d", width, height)
	}
	if len(pix) < width*height {
		return nil, fmt.Errorf("buffer %dx%d needs %d bytes, got %d", width, height, width*height, len(pix))
	}
	return &Buffer{Pix: pix, Stride: width, Width: width, Height: height}, nil
}

// FromGray borrows the pixels of img without copying. Coordinates of the
// returned buffer are relative to img.Rect.Min.
func FromGray(img *image.Gray) *Buffer {
	r := img.Rect
	return &Buffer{
		Pix:    img.Pix[img.PixOffset(r.Min.X, r.Min.Y):],
		Stride: img.Stride,
		Width:  r.Dx(),
		Height: r.Dy(),
	}
}

// Intensity returns the value at (col, row). Accessing a pixel outside the
// buffer is a caller bug and panics.
func (b *Buffer) Intensity(col, row int) int {
	if col < 0 || col >= b.Width || row < 0 || row >= b.Height {
		panic(fmt.Sprintf("fast: pixel (%d,%d) outside %dx%d buffer", col, row, b.Width, b.Height))
	}
	return int(b.Pix[row*b.Stride+col])
}

// Ring gathers the 16 circle samples around (col, row) in ring order.
func (b *Buffer) Ring(col, row int) [RingSize]int {
	var s [RingSize]int
	for i, o := range ring {
		s[i] = b.Intensity(col+o.DX, row+o.DY)
	}
	return s
}
