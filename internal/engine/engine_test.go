package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/fastcorners/internal/analyzer"
	"github.com/ivlev/fastcorners/internal/config"
	"github.com/ivlev/fastcorners/internal/report"
)

// memSource serves in-memory frames; a nil frame fails to load.
type memSource struct {
	frames []image.Image
}

func (s *memSource) Len() int              { return len(s.frames) }
func (s *memSource) Name(index int) string { return fmt.Sprintf("frame%d", index) }
func (s *memSource) Close() error          { return nil }

func (s *memSource) Bounds(index int) (image.Rectangle, error) {
	if s.frames[index] == nil {
		return image.Rectangle{}, errors.New("no frame")
	}
	return s.frames[index].Bounds(), nil
}

func (s *memSource) Load(index int) (image.Image, error) {
	if s.frames[index] == nil {
		return nil, errors.New("corrupt frame")
	}
	return s.frames[index], nil
}

// dots places isolated dark pixels on a light background; each one is a
// candidate (all 16 ring samples are brighter).
func dots(w, h int, pts ...image.Point) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	for _, p := range pts {
		img.SetGray(p.X, p.Y, color.Gray{Y: 0})
	}
	return img
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Smoothing.Disabled = true
	cfg.Workers = 3
	return cfg
}

func newTestProject(t *testing.T, cfg *config.Config, src *memSource) *Project {
	det, err := analyzer.NewDetector(cfg.Variant, analyzer.Options{
		Config:    cfg.Detector,
		Smoothing: cfg.Smoothing,
		Workers:   cfg.SweepWorkers,
	})
	if err != nil {
		t.Fatalf("NewDetector failed: %v", err)
	}
	return NewProject(cfg, src, det)
}

func TestRunKeepsSourceOrder(t *testing.T) {
	src := &memSource{}
	for i := 0; i < 6; i++ {
		pts := make([]image.Point, i)
		for j := range pts {
			pts[j] = image.Point{X: 5 + 6*j, Y: 5}
		}
		src.frames = append(src.frames, dots(48, 16, pts...))
	}
	cfg := testConfig(t)

	rep, err := newTestProject(t, cfg, src).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rep.Frames) != 6 {
		t.Fatalf("Expected 6 frames, got %d", len(rep.Frames))
	}
	for i, f := range rep.Frames {
		if f.Index != i || f.Input != fmt.Sprintf("frame%d", i) {
			t.Errorf("frame %d out of order: %+v", i, f)
		}
		if f.Count != i {
			t.Errorf("frame %d: expected %d corners, got %d", i, i, f.Count)
		}
		for _, c := range f.Corners {
			if c.Kind != "bright" {
				t.Errorf("frame %d: expected bright run, got %s", i, c.Kind)
			}
		}
		if _, err := os.Stat(f.Output); err != nil {
			t.Errorf("frame %d: overlay missing: %v", i, err)
		}
	}

	saved, err := report.Read(filepath.Join(cfg.OutputDir, DefaultReportName))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if saved.Total() != 15 || saved.MinRun != 12 || saved.Threshold != 40 {
		t.Errorf("unexpected saved report: total=%d minRun=%d threshold=%d", saved.Total(), saved.MinRun, saved.Threshold)
	}
}

func TestRunReportsFailedFrames(t *testing.T) {
	src := &memSource{frames: []image.Image{
		dots(16, 16, image.Point{X: 8, Y: 8}),
		nil,
		dots(16, 16),
	}}
	cfg := testConfig(t)
	cfg.ReportPath = filepath.Join(cfg.OutputDir, "custom.yaml")

	rep, err := newTestProject(t, cfg, src).Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for corrupt frame")
	}
	if rep == nil {
		t.Fatal("Expected a partial report")
	}
	if rep.Frames[1].Error == "" {
		t.Error("frame 1 should carry its error")
	}
	if rep.Frames[0].Count != 1 || rep.Frames[2].Count != 0 {
		t.Errorf("unexpected counts %d, %d", rep.Frames[0].Count, rep.Frames[2].Count)
	}
	if _, err := os.Stat(cfg.ReportPath); err != nil {
		t.Errorf("custom report path not used: %v", err)
	}
}

func TestRunEdgeFilters(t *testing.T) {
	src := &memSource{frames: []image.Image{dots(20, 20, image.Point{X: 10, Y: 10})}}
	cfg := testConfig(t)
	cfg.EdgeFilters = []string{"sobel", "laplacian"}
	cfg.NoOverlay = true

	rep, err := newTestProject(t, cfg, src).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rep.Frames[0].Output != "" {
		t.Errorf("overlay should be skipped, got %s", rep.Frames[0].Output)
	}
	for _, f := range []string{"sobel", "laplacian"} {
		for _, suffix := range []string{"x", "y", "xy"} {
			path := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame0_%s_%s.png", f, suffix))
			if _, err := os.Stat(path); err != nil {
				t.Errorf("missing %s: %v", path, err)
			}
		}
	}
}

func TestRunEmptySource(t *testing.T) {
	cfg := testConfig(t)
	if _, err := newTestProject(t, cfg, &memSource{}).Run(context.Background()); err == nil {
		t.Error("Expected error for empty source")
	}
}

func TestRunCancelled(t *testing.T) {
	src := &memSource{frames: []image.Image{dots(16, 16), dots(16, 16)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := newTestProject(t, testConfig(t), src).Run(ctx)
	if err == nil {
		t.Fatal("Expected error for cancelled run")
	}
	for _, f := range rep.Frames {
		if f.Error == "" {
			t.Errorf("frame %d should be marked as failed", f.Index)
		}
	}
}
