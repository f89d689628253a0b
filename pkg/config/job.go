// Package config loads render jobs from YAML files.
//
// A job names a formula, the raster size, the viewport and where to write the
// image:
//
//	formula: "(z^2 - 1)(z - 2 - i)^2 / (z^2 + 2 + 2i)"
//	width: 800
//	height: 800
//	viewport:
//	  xmin: -3
//	  xmax: 3
//	  ymin: -3
//	  ymax: 3
//	output: roots.bmp
//	format: bmp
//	workers: 0
//
// Loading follows read -> unmarshal -> defaults -> env overrides -> validate.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"domcolor/pkg/domcolor"
	"domcolor/pkg/render"
)

// Job describes one rendering.
type Job struct {
	Formula  string          `yaml:"formula"`
	Width    int             `yaml:"width"`
	Height   int             `yaml:"height"`
	Viewport render.Viewport `yaml:"viewport"`
	Output   string          `yaml:"output"`
	Format   string          `yaml:"format"`
	Workers  int             `yaml:"workers"`
}

// LoadJob reads, defaults, overrides and validates the job at path.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %q: %w", path, err)
	}
	job, err := ParseJob(data)
	if err != nil {
		return nil, fmt.Errorf("job file %q: %w", path, err)
	}
	return job, nil
}

// ParseJob is LoadJob for an in-memory document.
func ParseJob(data []byte) (*Job, error) {
	job, err := DecodeJob(data)
	if err != nil {
		return nil, err
	}
	ApplyDefaults(job)
	if err := ApplyEnvOverrides(job); err != nil {
		return nil, err
	}
	if err := Validate(job); err != nil {
		return nil, err
	}
	return job, nil
}

// DecodeJob only unmarshals data; callers that merge in other sources apply
// defaults and validate afterwards.
func DecodeJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job: %w", err)
	}
	return &job, nil
}

// OutputFormat returns the parsed format field.
func (j *Job) OutputFormat() (domcolor.Format, error) {
	return domcolor.ParseFormat(j.Format)
}

// Environment variables overriding job fields.
const (
	EnvWidth   = "DOMCOLOR_WIDTH"
	EnvHeight  = "DOMCOLOR_HEIGHT"
	EnvFormula = "DOMCOLOR_FORMULA"
	EnvWorkers = "DOMCOLOR_WORKERS"
)

// ApplyEnvOverrides replaces job fields with any DOMCOLOR_* variables set in
// the environment. Malformed numbers are reported rather than ignored.
func ApplyEnvOverrides(job *Job) error {
	if val := os.Getenv(EnvFormula); val != "" {
		job.Formula = val
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &job.Width},
		{EnvHeight, &job.Height},
		{EnvWorkers, &job.Workers},
	}
	for _, e := range ints {
		val := os.Getenv(e.name)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", e.name, val)
		}
		*e.dst = n
	}
	return nil
}

// Render produces the job's image bytes.
func (j *Job) Render(ctx context.Context) ([]byte, error) {
	format, err := j.OutputFormat()
	if err != nil {
		return nil, err
	}
	return domcolor.RenderContext(ctx, j.Width, j.Height, j.Formula, j.Viewport, domcolor.Options{
		Workers: j.Workers,
		Format:  format,
	})
}

// Run renders the job and writes it to Output. The file is replaced
// atomically so watchers never observe a partial image.
func (j *Job) Run(ctx context.Context) error {
	data, err := j.Render(ctx)
	if err != nil {
		return err
	}
	tmp := j.Output + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, j.Output); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %q: %w", j.Output, err)
	}
	return nil
}
