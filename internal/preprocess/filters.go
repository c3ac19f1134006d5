package preprocess

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Kernel is a row-major 3x3 correlation kernel.
type Kernel [9]float64

// FilterPair is a directional edge operator. For Laplacian the two kernels
// are the 8- and 4-neighbour variants rather than X and Y.
type FilterPair struct {
	Name string
	X, Y Kernel
}

var (
	Prewitt = FilterPair{
		Name: "prewitt",
		X:    Kernel{1, 0, -1, 1, 0, -1, 1, 0, -1},
		Y:    Kernel{1, 1, 1, 0, 0, 0, -1, -1, -1},
	}
	Sobel = FilterPair{
		Name: "sobel",
		X:    Kernel{1, 0, -1, 2, 0, -2, 1, 0, -1},
		Y:    Kernel{1, 2, 1, 0, 0, 0, -1, -2, -1},
	}
	Laplacian = FilterPair{
		Name: "laplacian",
		X:    Kernel{-1, -1, -1, -1, 8, -1, -1, -1, -1},
		Y:    Kernel{0, -1, 0, -1, 4, -1, 0, -1, 0},
	}
)

// Filters lists the known edge operators.
var Filters = []FilterPair{Prewitt, Sobel, Laplacian}

// FilterByName looks up an operator case-insensitively.
func FilterByName(name string) (FilterPair, error) {
	for _, f := range Filters {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return FilterPair{}, fmt.Errorf("unknown edge filter: %s", name)
}

// EdgeSet holds the responses of one operator. XY is the Y kernel applied
// to the X response.
type EdgeSet struct {
	X, Y, XY *image.Gray
}

// ApplyPair runs both kernels of f over g. Responses saturate to [0,255].
func ApplyPair(g *image.Gray, f FilterPair) EdgeSet {
	x := apply(g, f.X)
	return EdgeSet{
		X:  x,
		Y:  apply(g, f.Y),
		XY: apply(x, f.Y),
	}
}

func apply(g *image.Gray, k Kernel) *image.Gray {
	out := imaging.Convolve3x3(g, k, &imaging.ConvolveOptions{})
	res := image.NewGray(out.Rect)
	copyRed(res, out)
	return res
}
