// Package domcolor renders domain-coloring images of complex functions given
// as formula strings.
//
//	data, err := domcolor.Render(800, 600, "(z^2 - 1)/(z^2 + 1)", render.DefaultViewport)
//
// The formula is parsed, compiled once and sampled over the viewport; every
// sample is colored by argument (hue) and modulus (lightness) and the result
// is returned as a complete 24-bit BMP file.
package domcolor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"domcolor/pkg/bmp"
	"domcolor/pkg/expr"
	"domcolor/pkg/render"
)

// Format selects the output file format.
type Format string

const (
	FormatBMP Format = "bmp"
	FormatPNG Format = "png"
)

// ParseFormat accepts "bmp" or "png" in any case. The empty string selects BMP.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bmp":
		return FormatBMP, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/bmp"
}

// Extension is the file extension including the leading dot.
func (f Format) Extension() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".bmp"
}

// Options tunes RenderContext. The zero value renders a BMP using all CPUs.
type Options struct {
	Workers int
	Format  Format
}

// Render produces the BMP file for formula sampled on a width x height grid
// over vp. On any error no bytes are returned.
func Render(width, height int, formula string, vp render.Viewport) ([]byte, error) {
	return RenderContext(context.Background(), width, height, formula, vp, Options{})
}

// RenderContext is Render with cancellation, worker count and output format.
func RenderContext(ctx context.Context, width, height int, formula string, vp render.Viewport, opts Options) ([]byte, error) {
	r, err := Image(ctx, width, height, formula, vp, opts.Workers)
	if err != nil {
		return nil, err
	}
	return Encode(r, opts.Format)
}

// Image runs the pipeline up to the raster, for callers that encode or
// display it themselves.
func Image(ctx context.Context, width, height int, formula string, vp render.Viewport, workers int) (*render.Raster, error) {
	tree, err := expr.Parse(formula)
	if err != nil {
		return nil, fmt.Errorf("parse formula: %w", err)
	}
	r, err := render.Render(ctx, width, height, expr.Compile(tree), vp, render.WithWorkers(workers))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return r, nil
}

// Encode serializes r in the given format.
func Encode(r *render.Raster, format Format) ([]byte, error) {
	switch format {
	case "", FormatBMP:
		return bmp.Encode(r)
	case FormatPNG:
		var buf bytes.Buffer
		if err := r.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Write encodes r in the given format and writes it to w.
func Write(w io.Writer, r *render.Raster, format Format) error {
	data, err := Encode(r, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
