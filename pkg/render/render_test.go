package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"domcolor/pkg/colormap"
	"domcolor/pkg/expr"
)

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		ok   bool
	}{
		{"Default", DefaultViewport, true},
		{"Tiny", Viewport{XMin: 0, XMax: 1e-9, YMin: 0, YMax: 1e-9}, true},
		{"Zero Width", Viewport{XMin: 1, XMax: 1, YMin: 0, YMax: 1}, false},
		{"Inverted Height", Viewport{XMin: 0, XMax: 1, YMin: 1, YMax: 0}, false},
		{"NaN", Viewport{XMin: math.NaN(), XMax: 1, YMin: 0, YMax: 1}, false},
		{"Infinite", Viewport{XMin: 0, XMax: math.Inf(1), YMin: 0, YMax: 1}, false},
	}
	for _, tc := range tests {
		err := tc.vp.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("%s: expected ErrInvalidViewport, got %v", tc.name, err)
		}
	}
}

func TestSample(t *testing.T) {
	vp := Viewport{XMin: -2, XMax: 2, YMin: -1, YMax: 1}
	tests := []struct {
		x, y int
		want complex128
	}{
		{0, 0, -2 - 1i},
		{1, 0, -1 - 1i},
		{3, 1, 1 - 0.5i},
		{3, 3, 1 + 0.5i},
	}
	for _, tc := range tests {
		if got := vp.Sample(4, 4, tc.x, tc.y); got != tc.want {
			t.Errorf("Sample(%d,%d): expected %v, got %v", tc.x, tc.y, tc.want, got)
		}
	}
}

func TestPanZoom(t *testing.T) {
	vp := Viewport{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	if got := vp.Pan(0.5, -0.25); got != (Viewport{XMin: 0, XMax: 2, YMin: -1.5, YMax: 0.5}) {
		t.Errorf("Pan: got %s", got)
	}
	if got := vp.Zoom(0.5); got != (Viewport{XMin: -0.5, XMax: 0.5, YMin: -0.5, YMax: 0.5}) {
		t.Errorf("Zoom: got %s", got)
	}
}

func TestRenderStoresEachSample(t *testing.T) {
	const w, h = 7, 5
	vp := Viewport{XMin: -3, XMax: 4, YMin: -2, YMax: 3}
	f := expr.Compile(expr.MustParse("z^2 + i"))

	r, err := Render(context.Background(), w, h, f, vp, WithWorkers(3))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.Pix) != w*h*3 {
		t.Fatalf("Pix length: expected %d, got %d", w*h*3, len(r.Pix))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := colormap.Color(f(vp.Sample(w, h, x, y)))
			if got := r.RGBAt(x, y); got != want {
				t.Errorf("pixel (%d,%d): expected %+v, got %+v", x, y, want, got)
			}
		}
	}
}

func TestRenderIndependentOfWorkers(t *testing.T) {
	f := expr.Compile(expr.MustParse("sin(z)/(z - 1 - i)"))
	ref, err := Render(context.Background(), 33, 17, f, DefaultViewport, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{2, 3, 4, 16, 64, 0} {
		got, err := Render(context.Background(), 33, 17, f, DefaultViewport, WithWorkers(n))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got.Pix, ref.Pix) {
			t.Errorf("workers=%d: output differs from single-worker render", n)
		}
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	f := expr.Compile(expr.MustParse("z"))
	if _, err := Render(context.Background(), 0, 10, f, DefaultViewport); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("width 0: expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := Render(context.Background(), 10, -1, f, DefaultViewport); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("height -1: expected ErrInvalidDimensions, got %v", err)
	}
	// width*height*3 wraps int; must be rejected before allocating.
	for _, sz := range [][2]int{{math.MaxInt / 2, 4}, {math.MaxInt32, math.MaxInt32}, {math.MaxInt, math.MaxInt}} {
		if _, err := Render(context.Background(), sz[0], sz[1], f, DefaultViewport); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%dx%d: expected ErrInvalidDimensions, got %v", sz[0], sz[1], err)
		}
	}
	bad := Viewport{XMin: 1, XMax: -1, YMin: 0, YMax: 1}
	if _, err := Render(context.Background(), 10, 10, f, bad); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("inverted viewport: expected ErrInvalidViewport, got %v", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := expr.Compile(expr.MustParse("z"))
	r, err := Render(ctx, 10, 10, f, DefaultViewport)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if r != nil {
		t.Error("expected no raster after cancellation")
	}
}

func TestRenderCustomColorFunc(t *testing.T) {
	white := func(complex128) colormap.RGB { return colormap.RGB{R: 255, G: 255, B: 255} }
	r, err := Render(context.Background(), 3, 2, expr.Compile(expr.MustParse("z")), DefaultViewport, WithColorFunc(white))
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range r.Pix {
		if b != 255 {
			t.Fatalf("Pix[%d]: expected 255, got %d", i, b)
		}
	}
}

func colorRGBA(c colormap.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

func TestRasterImageOrientation(t *testing.T) {
	r := NewRaster(2, 3)
	bottom := colormap.RGB{R: 10, G: 20, B: 30}
	top := colormap.RGB{R: 200, G: 100, B: 50}
	r.SetRGB(1, 0, bottom)
	r.SetRGB(0, 2, top)

	if got := r.At(1, 2); got != colorRGBA(bottom) {
		t.Errorf("At(1,2): expected bottom sample row, got %v", got)
	}
	if got := r.At(0, 0); got != colorRGBA(top) {
		t.Errorf("At(0,0): expected top sample row, got %v", got)
	}

	img := r.RGBA()
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 3 {
		t.Errorf("image size: expected 2x3, got %dx%d", img.Rect.Dx(), img.Rect.Dy())
	}
	if img.Stride != 2*4 {
		t.Errorf("image stride: expected 8, got %d", img.Stride)
	}
	if got := img.RGBAAt(1, 2); got != colorRGBA(bottom) {
		t.Errorf("RGBAAt(1,2): expected %v, got %v", colorRGBA(bottom), got)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	f := expr.Compile(expr.MustParse("z"))
	r, err := Render(context.Background(), 8, 6, f, DefaultViewport)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			r1, g1, b1, _ := img.At(x, y).RGBA()
			r2, g2, b2, _ := r.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("pixel (%d,%d) differs after PNG round trip", x, y)
			}
		}
	}
}
