package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ivlev/fastcorners/internal/analyzer"
	"github.com/ivlev/fastcorners/internal/config"
	"github.com/ivlev/fastcorners/internal/overlay"
	"github.com/ivlev/fastcorners/internal/preprocess"
	"github.com/ivlev/fastcorners/internal/report"
	"github.com/ivlev/fastcorners/internal/source"
	"github.com/ivlev/fastcorners/internal/system"
)

// DefaultReportName is used when Config.ReportPath is empty.
const DefaultReportName = "corners.yaml"

type Project struct {
	Config   *config.Config
	Source   source.Source
	Detector analyzer.Detector
}

func NewProject(cfg *config.Config, src source.Source, det analyzer.Detector) *Project {
	return &Project{
		Config:   cfg,
		Source:   src,
		Detector: det,
	}
}

// Run detects corners on every frame of the source, writes overlays and
// the YAML report. Frames appear in the report in source order. A failed
// frame does not stop the others, but makes Run return an error.
func (p *Project) Run(ctx context.Context) (*report.Report, error) {
	startTime := time.Now()

	frameCount := p.Source.Len()
	if frameCount == 0 {
		return nil, fmt.Errorf("источник не содержит кадров")
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать папку %s: %w", p.Config.OutputDir, err)
	}

	filters := make([]preprocess.FilterPair, 0, len(p.Config.EdgeFilters))
	for _, name := range p.Config.EdgeFilters {
		f, err := preprocess.FilterByName(name)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	det := p.Config.Detector
	fmt.Println("--- [PROJECT: FAST CORNERS] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d\n", p.Config.InputPath, frameCount)
	fmt.Printf("[*] Детектор: %s | Порог: %d | Дуга: %d | Замыкание: %v\n", p.Config.Variant, det.Threshold, det.MinRun, det.WrapAround)
	fmt.Println("-----------------------------")

	jobs := make(chan int, frameCount)
	frames := make([]report.Frame, frameCount)

	numWorkers := system.Workers(p.Config.Workers)
	if numWorkers > frameCount {
		numWorkers = frameCount
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				frames[i] = p.processFrame(ctx, i, filters)
			}
		}()
	}

	for i := 0; i < frameCount; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	rep := &report.Report{
		Version:    report.Version,
		Detector:   p.Config.Variant,
		Threshold:  det.Threshold,
		MinRun:     det.MinRun,
		WrapAround: det.WrapAround,
		Frames:     frames,
	}

	reportPath := p.ReportPath()
	if err := report.Write(rep, reportPath); err != nil {
		return rep, fmt.Errorf("ошибка записи отчета: %w", err)
	}
	fmt.Printf("[*] Отчет сохранен: %s\n", reportPath)

	failed := 0
	for _, f := range frames {
		if f.Error != "" {
			failed++
		}
	}

	if p.Config.ShowStats {
		p.printStats(rep, time.Since(startTime))
	}

	if failed > 0 {
		return rep, fmt.Errorf("%d из %d кадров не обработаны, см. лог", failed, frameCount)
	}
	return rep, nil
}

// ReportPath returns where Run writes the YAML report.
func (p *Project) ReportPath() string {
	if p.Config.ReportPath != "" {
		return p.Config.ReportPath
	}
	return filepath.Join(p.Config.OutputDir, DefaultReportName)
}

func (p *Project) processFrame(ctx context.Context, i int, filters []preprocess.FilterPair) report.Frame {
	name := p.Source.Name(i)
	frame := report.Frame{Index: i, Input: name}

	if err := ctx.Err(); err != nil {
		frame.Error = err.Error()
		return frame
	}

	img, err := p.Source.Load(i)
	if err != nil {
		log.Printf("[!] Ошибка загрузки кадра %s: %v", name, err)
		frame.Error = err.Error()
		return frame
	}

	corners, err := p.Detector.Detect(ctx, img)
	if err != nil {
		log.Printf("[!] Ошибка детектора на кадре %s: %v", name, err)
		frame.Error = err.Error()
		return frame
	}

	b := img.Bounds()
	frame = report.NewFrame(i, name, b.Dx(), b.Dy(), corners)

	if !p.Config.NoOverlay {
		style := overlay.DefaultStyle()
		style.Radius = p.Config.MarkerRadius
		marked := overlay.Scale(overlay.Draw(img, corners, style), p.Config.DisplayScale)

		outPath := filepath.Join(p.Config.OutputDir, name+"_corners.png")
		if err := overlay.SavePNG(marked, outPath); err != nil {
			log.Printf("[!] Ошибка записи %s: %v", outPath, err)
			frame.Error = err.Error()
			return frame
		}
		frame.Output = outPath
	}

	if len(filters) > 0 {
		if err := p.writeEdges(img, name, filters); err != nil {
			log.Printf("[!] Ошибка фильтров на кадре %s: %v", name, err)
			frame.Error = err.Error()
			return frame
		}
	}

	fmt.Printf("[>] Готово: %s | углов: %d\n", name, len(corners))
	return frame
}

// writeEdges saves the X, Y and XY responses of every filter.
func (p *Project) writeEdges(img image.Image, name string, filters []preprocess.FilterPair) error {
	gray := preprocess.Smooth(preprocess.Gray(img), p.Config.Smoothing)
	for _, f := range filters {
		edges := preprocess.ApplyPair(gray, f)
		outputs := []struct {
			suffix string
			img    *image.Gray
		}{
			{"x", edges.X},
			{"y", edges.Y},
			{"xy", edges.XY},
		}
		for _, o := range outputs {
			path := filepath.Join(p.Config.OutputDir, fmt.Sprintf("%s_%s_%s.png", name, f.Name, o.suffix))
			if err := overlay.SavePNG(overlay.Scale(o.img, p.Config.DisplayScale), path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Project) printStats(rep *report.Report, total time.Duration) {
	frames := len(rep.Frames)
	corners := rep.Total()
	fps := float64(frames) / total.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Frames: %d\n"+
			"Corners: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), frames, corners, fps,
	)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Corners: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		frames,
		corners,
		total.Seconds(),
		fps,
	)

	f, err := os.OpenFile(filepath.Join(p.Config.OutputDir, "benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
