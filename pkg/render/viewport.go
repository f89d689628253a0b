package render

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidViewport is returned for empty, inverted or non-finite bounds.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrInvalidDimensions is returned for a zero, negative or unaddressable
	// raster size.
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
)

// Viewport is the rectangle of the complex plane mapped onto the pixel grid.
type Viewport struct {
	XMin float64 `yaml:"xmin" json:"xmin"`
	XMax float64 `yaml:"xmax" json:"xmax"`
	YMin float64 `yaml:"ymin" json:"ymin"`
	YMax float64 `yaml:"ymax" json:"ymax"`
}

// DefaultViewport is the square [-5,5] x [-5,5].
var DefaultViewport = Viewport{XMin: -5, XMax: 5, YMin: -5, YMax: 5}

// Validate checks that both extents are finite and strictly positive.
func (v Viewport) Validate() error {
	for _, b := range []float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: bounds must be finite, got %s", ErrInvalidViewport, v)
		}
	}
	if !(v.XMax > v.XMin) {
		return fmt.Errorf("%w: xmax (%g) must be greater than xmin (%g)", ErrInvalidViewport, v.XMax, v.XMin)
	}
	if !(v.YMax > v.YMin) {
		return fmt.Errorf("%w: ymax (%g) must be greater than ymin (%g)", ErrInvalidViewport, v.YMax, v.YMin)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", v.XMin, v.XMax, v.YMin, v.YMax)
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() complex128 {
	return complex((v.XMin+v.XMax)/2, (v.YMin+v.YMax)/2)
}

// Pan shifts the viewport by fractions of its own width and height.
func (v Viewport) Pan(dx, dy float64) Viewport {
	w, h := v.XMax-v.XMin, v.YMax-v.YMin
	return Viewport{
		XMin: v.XMin + dx*w, XMax: v.XMax + dx*w,
		YMin: v.YMin + dy*h, YMax: v.YMax + dy*h,
	}
}

// Zoom scales the viewport about its center; factor < 1 zooms in.
func (v Viewport) Zoom(factor float64) Viewport {
	c := v.Center()
	hw, hh := (v.XMax-v.XMin)/2*factor, (v.YMax-v.YMin)/2*factor
	return Viewport{
		XMin: real(c) - hw, XMax: real(c) + hw,
		YMin: imag(c) - hh, YMax: imag(c) + hh,
	}
}

// Sample returns the complex coordinate of pixel (xPx, yPx) on a width x
// height grid. Pixel (0,0) sits at (XMin, YMin); the steps are
// (XMax-XMin)/width and (YMax-YMin)/height, so XMax and YMax themselves are
// never sampled.
func (v Viewport) Sample(width, height, xPx, yPx int) complex128 {
	xStep := (v.XMax - v.XMin) / float64(width)
	yStep := (v.YMax - v.YMin) / float64(height)
	return complex(v.XMin+float64(xPx)*xStep, v.YMin+float64(yPx)*yStep)
}

// ValidateDimensions rejects rasters with a non-positive side and rasters
// whose RGB buffer length width*height*3 would overflow int.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/3/height {
		return fmt.Errorf("%w: %dx%d is too large to address", ErrInvalidDimensions, width, height)
	}
	return nil
}

// ExceedsPixels reports whether a width x height raster has more than max
// pixels, without computing the product. Both sides must be positive.
func ExceedsPixels(width, height, max int) bool {
	return width > max/height
}
