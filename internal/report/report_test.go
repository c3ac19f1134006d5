package report

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/fastcorners/internal/analyzer"
	"github.com/ivlev/fastcorners/internal/fast"
)

func TestNewFrame(t *testing.T) {
	corners := []analyzer.Corner{
		{Point: image.Point{X: 5, Y: 5}, Class: fast.Bright},
		{Point: image.Point{X: 5, Y: 10}, Class: fast.Dark},
	}
	f := NewFrame(2, "page.png", 64, 48, corners)

	want := Frame{
		Index:  2,
		Input:  "page.png",
		Width:  64,
		Height: 48,
		Count:  2,
		Corners: []Point{
			{X: 5, Y: 5, Kind: "bright"},
			{X: 5, Y: 10, Kind: "dark"},
		},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("frame (-want +got):\n%s", diff)
	}
}

func TestReportWriteRead(t *testing.T) {
	r := &Report{
		Version:   Version,
		Detector:  "fast",
		Threshold: 40,
		MinRun:    12,
		Frames: []Frame{
			{Index: 0, Input: "a.png", Width: 10, Height: 10, Count: 1, Output: "out/a_corners.png",
				Corners: []Point{{X: 3, Y: 4, Kind: "dark"}}},
			{Index: 1, Input: "b.png", Width: 10, Height: 10, Error: "decode failed", Corners: []Point{}},
		},
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := Write(r, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if got.Total() != 1 {
		t.Errorf("Total = %d, want 1", got.Total())
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
