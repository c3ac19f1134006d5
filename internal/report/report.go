package report

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/fastcorners/internal/analyzer"
)

const Version = "1.0"

// Report is the YAML summary of one run
type Report struct {
	Version    string  `yaml:"version"`
	Detector   string  `yaml:"detector"`
	Threshold  int     `yaml:"threshold"`
	MinRun     int     `yaml:"min_run"`
	WrapAround bool    `yaml:"wrap_around"`
	Frames     []Frame `yaml:"frames"`
}

// Frame holds the corners found in one image or page
type Frame struct {
	Index   int     `yaml:"index"`
	Input   string  `yaml:"input"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Count   int     `yaml:"count"`
	Output  string  `yaml:"output,omitempty"` // Overlay image path
	Error   string  `yaml:"error,omitempty"`
	Corners []Point `yaml:"corners,flow"`
}

// Point is a corner in sweep order
type Point struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"` // "bright" or "dark"
}

// NewFrame converts detector output, keeping its order
func NewFrame(index int, input string, width, height int, corners []analyzer.Corner) Frame {
	pts := make([]Point, len(corners))
	for i, c := range corners {
		pts[i] = Point{X: c.Point.X, Y: c.Point.Y, Kind: c.Class.String()}
	}
	return Frame{
		Index:   index,
		Input:   input,
		Width:   width,
		Height:  height,
		Count:   len(pts),
		Corners: pts,
	}
}

// Total returns the number of corners over all frames
func (r *Report) Total() int {
	n := 0
	for _, f := range r.Frames {
		n += f.Count
	}
	return n
}

// Write writes a report to a YAML file
func Write(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads a report from a YAML file
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}
