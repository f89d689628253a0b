package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"domcolor/pkg/metrics"
	"domcolor/pkg/server"
)

var serveFlags struct {
	listen    string
	maxPixels int
	timeout   time.Duration
	workers   int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendered images over HTTP",
	Long: `Start an HTTP server that renders images on request.

Endpoints:
  GET /render?f=<formula>&w=512&h=512&xmin=-5&xmax=5&ymin=-5&ymax=5&format=bmp
  GET /healthz
  GET /metrics   (Prometheus)

Examples:
  domcolor serve --listen :8080
  curl -o sin.bmp 'http://localhost:8080/render?f=sin(z)&w=800&h=600'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Config{
			Addr:          serveFlags.listen,
			MaxPixels:     serveFlags.maxPixels,
			RenderTimeout: serveFlags.timeout,
			Workers:       serveFlags.workers,
		}, metrics.NewCollector(nil))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", server.DefaultAddr, "listen address")
	serveCmd.Flags().IntVar(&serveFlags.maxPixels, "max-pixels", server.DefaultMaxPixels, "largest width*height accepted")
	serveCmd.Flags().DurationVar(&serveFlags.timeout, "timeout", server.DefaultRenderTimeout, "per-render time limit")
	serveCmd.Flags().IntVar(&serveFlags.workers, "workers", 0, "rendering goroutines per request (0 = one per CPU)")
}
