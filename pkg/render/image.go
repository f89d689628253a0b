package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"domcolor/pkg/colormap"
)

// Raster is a width x height grid of RGB triples in sampling order: row y_px
// starts at Pix[y_px*3*Width], so row 0 holds the YMin edge of the viewport.
//
// Raster also implements image.Image in the usual top-down orientation, with
// image row 0 showing the YMax edge.
type Raster struct {
	Width    int
	Height   int
	Pix      []byte
	Viewport Viewport
}

// NewRaster allocates a black raster.
func NewRaster(width, height int) *Raster {
	return &Raster{Width: width, Height: height, Pix: make([]byte, width*height*3)}
}

// RGBAt returns the color at column xPx of sampling row yPx.
func (r *Raster) RGBAt(xPx, yPx int) colormap.RGB {
	i := (yPx*r.Width + xPx) * 3
	return colormap.RGB{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}

// SetRGB stores c at column xPx of sampling row yPx.
func (r *Raster) SetRGB(xPx, yPx int, c colormap.RGB) {
	i := (yPx*r.Width + xPx) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// Row returns the RGB bytes of sampling row yPx.
func (r *Raster) Row(yPx int) []byte {
	stride := r.Width * 3
	return r.Pix[yPx*stride : (yPx+1)*stride]
}

func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height) }

// At returns the pixel at image coordinates, where y grows downwards.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	c := r.RGBAt(x, r.Height-1-y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// RGBABytes flattens the raster into top-down RGBA8888, the layout expected
// by image.RGBA and by GPU texture uploads.
func (r *Raster) RGBABytes() []byte {
	out := make([]byte, r.Width*r.Height*4)
	for y := 0; y < r.Height; y++ {
		src := r.Row(r.Height - 1 - y)
		dst := out[y*r.Width*4 : (y+1)*r.Width*4]
		for x := 0; x < r.Width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xFF
		}
	}
	return out
}

// RGBA returns the raster as an *image.RGBA.
func (r *Raster) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    r.RGBABytes(),
		Stride: r.Width * 4,
		Rect:   r.Bounds(),
	}
}

// EncodePNG writes the raster as a PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.RGBA())
}
