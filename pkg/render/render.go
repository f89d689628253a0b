// Package render samples a compiled formula over a viewport and colors each
// sample, producing an RGB raster.
package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"domcolor/pkg/colormap"
	"domcolor/pkg/expr"
)

// ColorFunc maps one function value to a pixel color.
type ColorFunc func(w complex128) colormap.RGB

type options struct {
	workers int
	color   ColorFunc
}

// Option configures Render.
type Option func(*options)

// WithWorkers sets the number of goroutines sharing the rows. Values below 1
// select runtime.GOMAXPROCS(0). The output does not depend on this setting.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithColorFunc replaces the domain-coloring map.
func WithColorFunc(f ColorFunc) Option {
	return func(o *options) { o.color = f }
}

// Render evaluates f at every pixel of a width x height grid over vp and
// stores the colored result. Row y_px and column x_px sample
//
//	z = (XMin + x_px*(XMax-XMin)/width) + i*(YMin + y_px*(YMax-YMin)/height)
//
// Rows are split into contiguous bands, one per worker; each worker writes
// only its own slice of the pixel buffer. The context is checked between
// rows; on cancellation no raster is returned.
func Render(ctx context.Context, width, height int, f expr.Func, vp Viewport, opts ...Option) (*Raster, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	o := options{color: colormap.Color}
	for _, opt := range opts {
		opt(&o)
	}
	workers := o.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}

	r := NewRaster(width, height)
	r.Viewport = vp

	xStep := (vp.XMax - vp.XMin) / float64(width)
	yStep := (vp.YMax - vp.YMin) / float64(height)
	stride := width * 3

	g, ctx := errgroup.WithContext(ctx)
	band := (height + workers - 1) / workers
	for start := 0; start < height; start += band {
		end := min(start+band, height)
		g.Go(func() error {
			for yPx := start; yPx < end; yPx++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				y := vp.YMin + float64(yPx)*yStep
				row := r.Pix[yPx*stride : (yPx+1)*stride]
				for xPx := 0; xPx < width; xPx++ {
					x := vp.XMin + float64(xPx)*xStep
					c := o.color(f(complex(x, y)))
					row[xPx*3+0] = c.R
					row[xPx*3+1] = c.G
					row[xPx*3+2] = c.B
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}
