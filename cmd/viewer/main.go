// Command viewer opens an interactive window showing the domain coloring of a
// formula.
//
// Keys:
//
//	arrows   pan by a tenth of the view
//	+ / -    zoom in / out about the center
//	click    recenter on the clicked point
//	R        reset to the starting viewport
//	S        save the current view as a BMP
//	Esc      quit
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"domcolor/pkg/bmp"
	"domcolor/pkg/expr"
	"domcolor/pkg/render"
)

const (
	panStep  = 0.1
	zoomIn   = 0.8
	zoomOut  = 1 / zoomIn
	savePath = "domcolor-%03d.bmp"
)

type frame struct {
	raster *render.Raster
	err    error
	took   time.Duration
}

type Game struct {
	formula string
	f       expr.Func
	width   int
	height  int
	home    render.Viewport
	vp      render.Viewport

	img     *ebiten.Image // reused canvas, width x height
	frames  chan frame
	cancel  context.CancelFunc
	current *render.Raster
	status  string
	saved   int
}

func newGame(formula string, width, height int, vp render.Viewport) (*Game, error) {
	f, err := expr.CompileString(formula)
	if err != nil {
		return nil, err
	}
	if err := render.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		formula: formula,
		f:       f,
		width:   width,
		height:  height,
		home:    vp,
		vp:      vp,
		frames:  make(chan frame, 1),
	}
	g.requestFrame()
	return g, nil
}

// requestFrame renders the current viewport in the background, abandoning
// any render still in progress.
func (g *Game) requestFrame() {
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	vp := g.vp
	go func() {
		start := time.Now()
		r, err := render.Render(ctx, g.width, g.height, g.f, vp)
		if ctx.Err() != nil {
			return
		}
		// drop a stale frame nobody has picked up yet
		select {
		case <-g.frames:
		default:
		}
		g.frames <- frame{raster: r, err: err, took: time.Since(start)}
	}()
}

// setViewport changes the view and schedules a render if it is still valid.
func (g *Game) setViewport(vp render.Viewport) {
	if vp.Validate() != nil || vp == g.vp {
		return
	}
	g.vp = vp
	g.requestFrame()
}

func (g *Game) Update() error {
	select {
	case fr := <-g.frames:
		if fr.err != nil {
			g.status = fr.err.Error()
			break
		}
		g.current = fr.raster
		if g.img == nil {
			g.img = ebiten.NewImage(g.width, g.height)
		}
		g.img.WritePixels(fr.raster.RGBABytes())
		g.status = fmt.Sprintf("%s  (%dms)", fr.raster.Viewport, fr.took.Milliseconds())
	default:
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.setViewport(g.vp.Pan(-panStep, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.setViewport(g.vp.Pan(panStep, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.setViewport(g.vp.Pan(0, panStep))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.setViewport(g.vp.Pan(0, -panStep))
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.setViewport(g.vp.Zoom(zoomIn))
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.setViewport(g.vp.Zoom(zoomOut))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.setViewport(g.home)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		g.setViewport(recenter(g.vp, g.width, g.height, x, y))
	}
	return nil
}

// recenter moves vp so that screen pixel (x, y) becomes its center. Screen
// rows grow downwards while sampling rows grow upwards.
func recenter(vp render.Viewport, width, height, x, y int) render.Viewport {
	target := vp.Sample(width, height, x, height-1-y)
	c := vp.Center()
	return vp.Pan((real(target)-real(c))/(vp.XMax-vp.XMin), (imag(target)-imag(c))/(vp.YMax-vp.YMin))
}

func (g *Game) save() {
	if g.current == nil {
		return
	}
	g.saved++
	name := fmt.Sprintf(savePath, g.saved)
	file, err := os.Create(name)
	if err == nil {
		err = bmp.Write(file, g.current)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		g.status = "save failed: " + err.Error()
		slog.Error("save failed", "path", name, "error", err)
		return
	}
	g.status = "saved " + name
	slog.Info("saved view", "path", name, "viewport", g.current.Viewport.String())
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.img != nil {
		screen.DrawImage(g.img, &ebiten.DrawImageOptions{})
	}
	ebitenutil.DebugPrintAt(screen, "f(z) = "+g.formula, 4, 4)
	ebitenutil.DebugPrintAt(screen, g.status, 4, 20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

var flags struct {
	width  int
	height int
	scale  float64
	vp     render.Viewport
}

var rootCmd = &cobra.Command{
	Use:   "viewer FORMULA",
	Short: "Explore the domain coloring of a formula interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := newGame(args[0], flags.width, flags.height, flags.vp)
		if err != nil {
			return err
		}
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSize(int(float64(flags.width)*flags.scale), int(float64(flags.height)*flags.scale))
		ebiten.SetWindowTitle("domcolor - " + args[0])
		return ebiten.RunGame(game)
	},
}

func main() {
	f := rootCmd.Flags()
	f.IntVarP(&flags.width, "width", "W", 512, "render width in pixels")
	f.IntVarP(&flags.height, "height", "H", 512, "render height in pixels")
	f.Float64Var(&flags.scale, "scale", 1, "window scale factor")
	f.Float64Var(&flags.vp.XMin, "xmin", render.DefaultViewport.XMin, "real part at the left edge")
	f.Float64Var(&flags.vp.XMax, "xmax", render.DefaultViewport.XMax, "real part at the right edge")
	f.Float64Var(&flags.vp.YMin, "ymin", render.DefaultViewport.YMin, "imaginary part at the bottom edge")
	f.Float64Var(&flags.vp.YMax, "ymax", render.DefaultViewport.YMax, "imaginary part at the top edge")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
