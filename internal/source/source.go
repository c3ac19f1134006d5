package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the frames to analyze: image files, PDF pages or a
// generated pattern.
type Source interface {
	Len() int
	Name(index int) string
	Bounds(index int) (image.Rectangle, error)
	Load(index int) (image.Image, error)
	Close() error
}

// QRPrefix selects the generated QR source, e.g. "qr:hello".
const QRPrefix = "qr:"

// Open picks a source for path: "qr:<text>" for a QR pattern, *.pdf for
// PDF pages, anything else as an image file or directory.
func Open(path string, dpi, qrSize int) (Source, error) {
	switch {
	case strings.HasPrefix(path, QRPrefix):
		return NewQRSource(strings.TrimPrefix(path, QRPrefix), qrSize)
	case strings.HasSuffix(strings.ToLower(path), ".pdf"):
		return NewPDFSource(path, dpi)
	default:
		return NewImageSource(path)
	}
}

type PDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *PDFSource) Len() int {
	return f.doc.NumPage()
}

func (f *PDFSource) Name(index int) string {
	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	return fmt.Sprintf("%s_p%03d", base, index+1)
}

// Bounds returns the page size in PDF points, not rendered pixels.
func (f *PDFSource) Bounds(index int) (image.Rectangle, error) {
	return f.doc.Bound(index)
}

// Load renders the page with a document of its own so that workers do not
// share the fitz handle.
func (f *PDFSource) Load(index int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()

	img, err := workerDoc.ImageDPI(index, float64(f.dpi))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	return img, nil
}

func (f *PDFSource) Close() error {
	return f.doc.Close()
}
