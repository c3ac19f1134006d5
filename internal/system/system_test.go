package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.png", "b.JPG", "c.webp", "notes.txt"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatest(dir, ImageExtensions...)
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "c.webp" {
		t.Errorf("Expected c.webp, got %s", latest)
	}

	if _, err := FindLatest(dir, ".pdf"); err == nil {
		t.Error("Expected error when no PDF present")
	}
}

func TestHasExtension(t *testing.T) {
	if !HasExtension("Scan.TIFF", ImageExtensions...) {
		t.Error("TIFF should match case-insensitively")
	}
	if HasExtension("scan.gif", ImageExtensions...) {
		t.Error("GIF is not a supported extension")
	}
}

func TestWorkers(t *testing.T) {
	if got := Workers(3); got != 3 {
		t.Errorf("Workers(3) = %d", got)
	}
	if got := Workers(0); got < 1 {
		t.Errorf("Workers(0) = %d, want >= 1", got)
	}
}

func TestGrayPool(t *testing.T) {
	p := NewGrayPool()
	rect := image.Rect(0, 0, 16, 9)

	img := p.Get(rect)
	if img.Rect != rect || len(img.Pix) != 16*9 {
		t.Fatalf("unexpected buffer %v with %d bytes", img.Rect, len(img.Pix))
	}
	p.Put(img)

	// Same size at a different origin shares the pool.
	moved := image.Rect(4, 4, 20, 13)
	again := p.Get(moved)
	if again.Rect != moved {
		t.Errorf("expected rect %v, got %v", moved, again.Rect)
	}
	if len(again.Pix) != 16*9 {
		t.Errorf("unexpected pixel count %d", len(again.Pix))
	}

	// Putting an unknown size is a no-op.
	p.Put(image.NewGray(image.Rect(0, 0, 3, 3)))
	p.Put(nil)
}
