package config

import (
	"path/filepath"
	"strings"

	"domcolor/pkg/render"
)

// Default values for job fields.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
	DefaultOutput = "out.bmp"
	DefaultFormat = "bmp"
)

// ApplyDefaults fills unset fields. An all-zero viewport becomes
// render.DefaultViewport; an empty format is taken from the output extension.
func ApplyDefaults(job *Job) {
	if job.Width == 0 {
		job.Width = DefaultWidth
	}
	if job.Height == 0 {
		job.Height = DefaultHeight
	}
	if job.Viewport == (render.Viewport{}) {
		job.Viewport = render.DefaultViewport
	}
	if job.Output == "" {
		job.Output = DefaultOutput
	}
	if job.Format == "" {
		switch strings.ToLower(filepath.Ext(job.Output)) {
		case ".png":
			job.Format = "png"
		default:
			job.Format = DefaultFormat
		}
	}
}
