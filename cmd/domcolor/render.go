package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"domcolor/pkg/config"
	"domcolor/pkg/render"
	"domcolor/pkg/watch"
)

var renderFlags struct {
	job      string
	watch    bool
	width    int
	height   int
	viewport render.Viewport
	output   string
	format   string
	workers  int
}

var renderCmd = &cobra.Command{
	Use:   "render [FORMULA]",
	Short: "Render a formula to an image file",
	Long: `Render a formula to a BMP or PNG file.

The job is taken from --job (a YAML file) when given; flags set explicitly on
the command line override the file. DOMCOLOR_WIDTH, DOMCOLOR_HEIGHT,
DOMCOLOR_FORMULA and DOMCOLOR_WORKERS override both.

Examples:
  # 800x800 BMP of a rational function
  domcolor render "(z^2 - 1)/(z^2 + 1)" -W 800 -H 800 -o rational.bmp

  # Zoom into the essential singularity of exp(1/z)
  domcolor render "exp(1/z)" --xmin -0.5 --xmax 0.5 --ymin -0.5 --ymax 0.5 -o exp.png

  # Re-render a job file every time it is saved
  domcolor render --job job.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.job, "job", "j", "", "YAML job file")
	f.BoolVarP(&renderFlags.watch, "watch", "w", false, "re-render whenever the job file changes (requires --job)")
	f.IntVarP(&renderFlags.width, "width", "W", config.DefaultWidth, "image width in pixels")
	f.IntVarP(&renderFlags.height, "height", "H", config.DefaultHeight, "image height in pixels")
	f.Float64Var(&renderFlags.viewport.XMin, "xmin", render.DefaultViewport.XMin, "real part at the left edge")
	f.Float64Var(&renderFlags.viewport.XMax, "xmax", render.DefaultViewport.XMax, "real part at the right edge")
	f.Float64Var(&renderFlags.viewport.YMin, "ymin", render.DefaultViewport.YMin, "imaginary part at the bottom edge")
	f.Float64Var(&renderFlags.viewport.YMax, "ymax", render.DefaultViewport.YMax, "imaginary part at the top edge")
	f.StringVarP(&renderFlags.output, "output", "o", config.DefaultOutput, "output file")
	f.StringVarP(&renderFlags.format, "format", "f", "", "output format (bmp, png); default from the output extension")
	f.IntVar(&renderFlags.workers, "workers", 0, "rendering goroutines (0 = one per CPU)")
}

// buildJob merges the job file, explicitly set flags and the environment.
func buildJob(cmd *cobra.Command, args []string) (*config.Job, error) {
	job := &config.Job{}
	if renderFlags.job != "" {
		data, err := os.ReadFile(renderFlags.job)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file %q: %w", renderFlags.job, err)
		}
		if job, err = config.DecodeJob(data); err != nil {
			return nil, fmt.Errorf("job file %q: %w", renderFlags.job, err)
		}
	}

	flags := cmd.Flags()
	useFile := renderFlags.job != ""
	set := func(name string) bool { return !useFile || flags.Changed(name) }

	if len(args) == 1 {
		job.Formula = args[0]
	}
	if set("width") {
		job.Width = renderFlags.width
	}
	if set("height") {
		job.Height = renderFlags.height
	}
	if set("xmin") {
		job.Viewport.XMin = renderFlags.viewport.XMin
	}
	if set("xmax") {
		job.Viewport.XMax = renderFlags.viewport.XMax
	}
	if set("ymin") {
		job.Viewport.YMin = renderFlags.viewport.YMin
	}
	if set("ymax") {
		job.Viewport.YMax = renderFlags.viewport.YMax
	}
	if set("output") {
		job.Output = renderFlags.output
		if !flags.Changed("format") {
			job.Format = ""
		}
	}
	if flags.Changed("format") {
		job.Format = renderFlags.format
	}
	if set("workers") {
		job.Workers = renderFlags.workers
	}

	config.ApplyDefaults(job)
	if err := config.ApplyEnvOverrides(job); err != nil {
		return nil, err
	}
	if err := config.Validate(job); err != nil {
		return nil, err
	}
	return job, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFlags.watch && renderFlags.job == "" {
		return fmt.Errorf("--watch requires --job")
	}
	if renderFlags.job == "" && len(args) == 0 && os.Getenv(config.EnvFormula) == "" {
		return fmt.Errorf("no formula given")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderOnce := func(ctx context.Context) error {
		job, err := buildJob(cmd, args)
		if err != nil {
			return err
		}
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			return err
		}
		slog.Info("wrote image",
			"output", job.Output,
			"formula", job.Formula,
			"size", fmt.Sprintf("%dx%d", job.Width, job.Height),
			"viewport", job.Viewport.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	if err := renderOnce(ctx); err != nil {
		if !renderFlags.watch {
			return err
		}
		slog.Error("initial render failed", "error", err)
	}
	if !renderFlags.watch {
		return nil
	}

	w := &watch.Watcher{Path: renderFlags.job, OnChange: renderOnce}
	return w.Run(ctx)
}
