package main

import (
	"math"
	"testing"
	"time"

	"domcolor/pkg/render"
)

func TestRecenter(t *testing.T) {
	vp := render.Viewport{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
	tests := []struct {
		x, y  int
		wantC complex128
	}{
		// 4x4 grid: columns sample -2,-1,0,1; screen row 0 is sampling row 3 (y=1)
		{2, 1, 0 + 0i},
		{0, 3, -2 - 2i},
		{3, 0, 1 + 1i},
	}
	for _, tc := range tests {
		got := recenter(vp, 4, 4, tc.x, tc.y)
		c := got.Center()
		if math.Abs(real(c)-real(tc.wantC)) > 1e-12 || math.Abs(imag(c)-imag(tc.wantC)) > 1e-12 {
			t.Errorf("recenter(%d,%d): expected center %v, got %v", tc.x, tc.y, tc.wantC, c)
		}
		if got.XMax-got.XMin != 4 || got.YMax-got.YMin != 4 {
			t.Errorf("recenter(%d,%d): extent changed to %s", tc.x, tc.y, got)
		}
	}
}

func TestNewGameRendersFirstFrame(t *testing.T) {
	g, err := newGame("z^2", 8, 6, render.DefaultViewport)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case fr := <-g.frames:
		if fr.err != nil {
			t.Fatal(fr.err)
		}
		if fr.raster.Width != 8 || fr.raster.Height != 6 {
			t.Errorf("expected 8x6 frame, got %dx%d", fr.raster.Width, fr.raster.Height)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame rendered")
	}
}

func TestNewGameRejectsBadInput(t *testing.T) {
	if _, err := newGame("sin(", 8, 8, render.DefaultViewport); err == nil {
		t.Error("expected parse error")
	}
	if _, err := newGame("z", 0, 8, render.DefaultViewport); err == nil {
		t.Error("expected dimension error")
	}
	if _, err := newGame("z", 8, 8, render.Viewport{}); err == nil {
		t.Error("expected viewport error")
	}
}

func TestSetViewportIgnoresInvalid(t *testing.T) {
	g, err := newGame("z", 4, 4, render.DefaultViewport)
	if err != nil {
		t.Fatal(err)
	}
	g.setViewport(render.Viewport{XMin: 1, XMax: 0, YMin: 0, YMax: 1})
	if g.vp != render.DefaultViewport {
		t.Errorf("invalid viewport was applied: %s", g.vp)
	}
	g.setViewport(g.vp.Zoom(zoomIn))
	if g.vp == render.DefaultViewport {
		t.Error("valid zoom was not applied")
	}
}
