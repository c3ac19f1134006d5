package fast

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Hook is called once per candidate, in result order.
type Hook func(p image.Point)

// Detect sweeps every interior pixel column by column (ascending column,
// then ascending row) and returns the candidates in that order. Pixels
// closer than Radius to an edge are never evaluated, so a buffer narrower
// or shorter than 2*Radius+1 yields no candidates.
func Detect(buf *Buffer, cfg Config, hook Hook) []image.Point {
	corners := sweep(buf, cfg, Radius, buf.Width-Radius)
	if hook != nil {
		for _, p := range corners {
			hook(p)
		}
	}
	return corners
}

// DetectParallel splits the column range into contiguous stripes, sweeps
// them concurrently and joins the stripes in column order. The result is
// identical to Detect. The hook runs on the calling goroutine after all
// stripes are done. workers <= 0 uses one stripe per CPU.
func DetectParallel(ctx context.Context, buf *Buffer, cfg Config, workers int, hook Hook) ([]image.Point, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	first, last := Radius, buf.Width-Radius
	cols := last - first
	if cols <= 0 || buf.Height < 2*Radius+1 {
		return nil, ctx.Err()
	}
	if workers > cols {
		workers = cols
	}

	stripes := make([][]image.Point, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		from := first + cols*i/workers
		to := first + cols*(i+1)/workers
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stripes[i] = sweep(buf, cfg, from, to)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := 0
	for _, s := range stripes {
		n += len(s)
	}
	corners := make([]image.Point, 0, n)
	for _, s := range stripes {
		corners = append(corners, s...)
	}
	if hook != nil {
		for _, p := range corners {
			hook(p)
		}
	}
	return corners, nil
}

// ClassAt re-runs the test at p and returns the class of the winning run,
// or Neutral.
func ClassAt(buf *Buffer, cfg Config, p image.Point) Class {
	return cfg.run(buf.Intensity(p.X, p.Y), buf.Ring(p.X, p.Y))
}

// sweep covers columns [from, to) and all interior rows.
func sweep(buf *Buffer, cfg Config, from, to int) []image.Point {
	var corners []image.Point
	for c := from; c < to; c++ {
		for r := Radius; r < buf.Height-Radius; r++ {
			if cfg.run(buf.Intensity(c, r), buf.Ring(c, r)) != Neutral {
				corners = append(corners, image.Point{X: c, Y: r})
			}
		}
	}
	return corners
}
