package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ivlev/fastcorners/internal/system"
)

type ImageSource struct {
	paths []string
}

// NewImageSource accepts a single image file or a directory of images.
// Directory entries are sorted by name.
func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && system.HasExtension(entry.Name(), system.ImageExtensions...) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) Len() int {
	return len(s.paths)
}

func (s *ImageSource) Name(index int) string {
	base := filepath.Base(s.paths[index])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *ImageSource) Bounds(index int) (image.Rectangle, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return image.Rectangle{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return image.Rect(0, 0, cfg.Width, cfg.Height), nil
}

func (s *ImageSource) Load(index int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
