package source

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

// QRSource is a single generated frame holding a QR code. Its many square
// modules make it a handy deterministic corner test pattern.
type QRSource struct {
	content string
	img     image.Image
}

// NewQRSource renders content as a size x size QR code.
func NewQRSource(content string, size int) (*QRSource, error) {
	if content == "" {
		return nil, fmt.Errorf("пустой текст для QR-кода")
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return &QRSource{content: content, img: q.Image(size)}, nil
}

func (s *QRSource) Len() int {
	return 1
}

func (s *QRSource) Name(index int) string {
	return "qr"
}

func (s *QRSource) Bounds(index int) (image.Rectangle, error) {
	return s.img.Bounds(), nil
}

func (s *QRSource) Load(index int) (image.Image, error) {
	return s.img, nil
}

func (s *QRSource) Close() error {
	return nil
}
