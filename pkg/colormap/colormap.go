// Package colormap maps complex values to colors for domain coloring: the
// argument selects the hue and the magnitude selects the lightness.
package colormap

import (
	"image/color"
	"math"
	"math/cmplx"
)

// Saturation is the fixed HPLuv saturation used for every sample.
const Saturation = 100.0

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color; domain-colored pixels are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}.RGBA()
}

// Lightness maps |w| onto [0,100): 0 at the origin, approaching 100 as |w|
// grows without bound. An infinite magnitude maps to exactly 100.
func Lightness(w complex128) float64 {
	mag := cmplx.Abs(w)
	if math.IsInf(mag, 1) {
		return 100
	}
	return 100 * mag / (mag + 1)
}

// Hue returns the argument of w in degrees, normalised to [0,360).
func Hue(w complex128) float64 {
	arg := cmplx.Phase(w)
	if arg >= 0 {
		return arg / math.Pi * 180
	}
	return arg*180/math.Pi + 360
}

// Color returns the domain-coloring color of one function value. NaN values
// (e.g. 0/0) are drawn black.
func Color(w complex128) RGB {
	if cmplx.IsNaN(w) {
		return RGB{}
	}
	r, g, b := HPLuvToRGB(Hue(w), Saturation, Lightness(w))
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

// channel scales a [0,1] component to 8 bits by truncation. Out-of-range
// values saturate and NaN becomes 0.
func channel(c float64) uint8 {
	v := c * 255
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
