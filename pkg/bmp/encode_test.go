package bmp

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"testing"

	xbmp "golang.org/x/image/bmp"

	"domcolor/pkg/colormap"
	"domcolor/pkg/expr"
	"domcolor/pkg/render"
)

func renderRaster(t *testing.T, w, h int, formula string) *render.Raster {
	t.Helper()
	f, err := expr.CompileString(formula)
	if err != nil {
		t.Fatalf("compile %q: %v", formula, err)
	}
	r, err := render.Render(context.Background(), w, h, f, render.DefaultViewport)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return r
}

func TestRowStride(t *testing.T) {
	tests := []struct {
		width, want int
	}{
		{1, 4},
		{2, 8},
		{3, 12},
		{4, 12},
		{5, 16},
		{100, 300},
		{101, 304},
	}
	for _, tc := range tests {
		if got := RowStride(tc.width); got != tc.want {
			t.Errorf("RowStride(%d): expected %d, got %d", tc.width, tc.want, got)
		}
		if RowStride(tc.width)%4 != 0 {
			t.Errorf("RowStride(%d) not a multiple of 4", tc.width)
		}
	}
}

func TestHeader(t *testing.T) {
	r := renderRaster(t, 5, 3, "z")
	data, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	le := binary.LittleEndian

	if data[0] != 'B' || data[1] != 'M' {
		t.Errorf("magic: expected BM, got %q", data[:2])
	}
	if got := int(le.Uint32(data[2:])); got != len(data) {
		t.Errorf("file size field: expected %d, got %d", len(data), got)
	}
	if len(data) != FileSize(5, 3) || len(data) != 54+16*3 {
		t.Errorf("file length: expected %d, got %d", 54+16*3, len(data))
	}

	fields := []struct {
		name   string
		offset int
		size   int
		want   uint32
	}{
		{"reserved1", 6, 2, 0},
		{"reserved2", 8, 2, 0},
		{"pixel offset", 10, 4, 54},
		{"info size", 14, 4, 40},
		{"width", 18, 4, 5},
		{"height", 22, 4, 3},
		{"planes", 26, 2, 1},
		{"bpp", 28, 2, 24},
		{"compression", 30, 4, 0},
		{"image size", 34, 4, 0},
		{"x resolution", 38, 4, 0},
		{"y resolution", 42, 4, 0},
		{"colors used", 46, 4, 0},
		{"colors important", 50, 4, 0},
	}
	for _, f := range fields {
		var got uint32
		if f.size == 2 {
			got = uint32(le.Uint16(data[f.offset:]))
		} else {
			got = le.Uint32(data[f.offset:])
		}
		if got != f.want {
			t.Errorf("%s: expected %d, got %d", f.name, f.want, got)
		}
	}
}

func TestPixelLayout(t *testing.T) {
	r := render.NewRaster(2, 2)
	r.SetRGB(0, 0, colormap.RGB{R: 1, G: 2, B: 3})
	r.SetRGB(1, 0, colormap.RGB{R: 4, G: 5, B: 6})
	r.SetRGB(0, 1, colormap.RGB{R: 7, G: 8, B: 9})
	r.SetRGB(1, 1, colormap.RGB{R: 10, G: 11, B: 12})

	data, err := Encode(r)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		3, 2, 1, 6, 5, 4, 0, 0, // sampling row 0, BGR, 2 padding bytes
		9, 8, 7, 12, 11, 10, 0, 0,
	}
	if !bytes.Equal(data[HeaderSize:], want) {
		t.Errorf("pixel data: expected %v, got %v", want, data[HeaderSize:])
	}
}

func TestPaddingIsZero(t *testing.T) {
	for w := 1; w <= 9; w++ {
		r := render.NewRaster(w, 4)
		for i := range r.Pix {
			r.Pix[i] = 0xFF
		}
		data, err := Encode(r)
		if err != nil {
			t.Fatal(err)
		}
		stride := RowStride(w)
		for y := 0; y < 4; y++ {
			row := data[HeaderSize+y*stride : HeaderSize+(y+1)*stride]
			for i := 3 * w; i < stride; i++ {
				if row[i] != 0 {
					t.Errorf("width %d row %d: padding byte %d is %d", w, y, i, row[i])
				}
			}
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	sizes := []image.Point{{1, 1}, {2, 3}, {3, 2}, {4, 4}, {5, 7}, {64, 48}}
	for _, sz := range sizes {
		r := renderRaster(t, sz.X, sz.Y, "(z^2 - 1)/(z - i)")
		var buf bytes.Buffer
		if err := Write(&buf, r); err != nil {
			t.Fatalf("Write: %v", err)
		}
		img, err := xbmp.Decode(&buf)
		if err != nil {
			t.Fatalf("%dx%d: decode: %v", sz.X, sz.Y, err)
		}
		if img.Bounds() != r.Bounds() {
			t.Fatalf("%dx%d: bounds: expected %v, got %v", sz.X, sz.Y, r.Bounds(), img.Bounds())
		}
		for y := 0; y < sz.Y; y++ {
			for x := 0; x < sz.X; x++ {
				r1, g1, b1, _ := img.At(x, y).RGBA()
				r2, g2, b2, _ := r.At(x, y).RGBA()
				if r1 != r2 || g1 != g2 || b1 != b2 {
					t.Fatalf("%dx%d: pixel (%d,%d) differs after decode", sz.X, sz.Y, x, y)
				}
			}
		}
	}
}

func TestEncodeRejectsBadRaster(t *testing.T) {
	if _, err := Encode(&render.Raster{}); err == nil {
		t.Error("expected error for empty raster")
	}
	if _, err := Encode(&render.Raster{Width: 2, Height: 2, Pix: make([]byte, 5)}); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func BenchmarkEncode(b *testing.B) {
	r := render.NewRaster(1024, 768)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(r); err != nil {
			b.Fatal(err)
		}
	}
}
