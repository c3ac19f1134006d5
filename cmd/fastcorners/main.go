package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ivlev/fastcorners/internal/analyzer"
	"github.com/ivlev/fastcorners/internal/config"
	"github.com/ivlev/fastcorners/internal/engine"
	"github.com/ivlev/fastcorners/internal/source"
	"github.com/ivlev/fastcorners/internal/system"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPtr := flag.String("config", "", "YAML-файл настроек (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Изображение, папка, PDF или qr:<текст> (по умолчанию: самый свежий файл в input/)")
	outputPtr := flag.String("output", "output", "Папка для результатов")
	reportPtr := flag.String("report", "", "Путь к YAML-отчету (по умолчанию: <output>/corners.yaml)")
	detectorPtr := flag.String("detector", "fast", "Детектор: fast, fast-wrap")
	thresholdPtr := flag.Int("threshold", 40, "Порог яркости относительно центра")
	minRunPtr := flag.Int("min-run", 12, "Минимальная длина непрерывной дуги (1-16)")
	wrapPtr := flag.Bool("wrap", false, "Считать дугу через переход 15 -> 0")
	sigmaPtr := flag.Float64("sigma", 0, "Сигма размытия Гаусса (0 - ядро 3x3)")
	noBlurPtr := flag.Bool("no-blur", false, "Не размывать перед детекцией")
	workersPtr := flag.Int("workers", 0, "Кадров параллельно (0 - по числу ядер)")
	sweepPtr := flag.Int("sweep-workers", 0, "Полос столбцов на кадр (0 - по числу CPU)")
	scalePtr := flag.Float64("scale", 0.5, "Масштаб выходных изображений")
	markerPtr := flag.Float64("marker", 1, "Радиус маркера угла в пикселях")
	dpiPtr := flag.Int("dpi", 150, "DPI для страниц PDF")
	qrSizePtr := flag.Int("qr-size", 512, "Размер QR-кода для источника qr:")
	edgesPtr := flag.String("edges", "", "Дополнительные фильтры через запятую: prewitt, sobel, laplacian")
	noOverlayPtr := flag.Bool("no-overlay", false, "Не сохранять изображения с маркерами")
	statsPtr := flag.Bool("stats", false, "Показать статистику производительности")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения настроек: %v", err)
		}
		cfg = loaded
		fmt.Printf("[*] Настройки загружены: %s\n", *configPtr)
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputDir = *outputPtr
		case "report":
			cfg.ReportPath = *reportPtr
		case "detector":
			cfg.Variant = *detectorPtr
		case "threshold":
			cfg.Detector.Threshold = *thresholdPtr
		case "min-run":
			cfg.Detector.MinRun = *minRunPtr
		case "wrap":
			cfg.Detector.WrapAround = *wrapPtr
		case "sigma":
			cfg.Smoothing.Sigma = *sigmaPtr
		case "no-blur":
			cfg.Smoothing.Disabled = *noBlurPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "sweep-workers":
			cfg.SweepWorkers = *sweepPtr
		case "scale":
			cfg.DisplayScale = *scalePtr
		case "marker":
			cfg.MarkerRadius = *markerPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "qr-size":
			cfg.QRSize = *qrSizePtr
		case "edges":
			cfg.EdgeFilters = splitList(*edgesPtr)
		case "no-overlay":
			cfg.NoOverlay = *noOverlayPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = version

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Неверные настройки: %v", err)
	}

	if cfg.InputPath == "" {
		os.MkdirAll("input", 0755)
		exts := append([]string{".pdf"}, system.ImageExtensions...)
		latest, err := system.FindLatest("input", exts...)
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите изображение или PDF в input/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath, cfg.DPI, cfg.QRSize)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	frameWorkers := min(system.Workers(cfg.Workers), src.Len())
	det, err := analyzer.NewDetector(cfg.Variant, analyzer.Options{
		Config:    cfg.Detector,
		Smoothing: cfg.Smoothing,
		Workers:   cfg.StripeWorkers(frameWorkers),
	})
	if err != nil {
		log.Fatalf("[-] Ошибка детектора: %v", err)
	}
	// fast-wrap forces wrap-around; keep the report honest.
	if fd, ok := det.(*analyzer.FASTDetector); ok {
		cfg.Detector = fd.Config
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewProject(cfg, src, det)
	rep, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Найдено углов: %d | Отчет: %s\n", rep.Total(), project.ReportPath())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
