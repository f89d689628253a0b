package config

import (
	"fmt"
	"strings"

	"domcolor/pkg/domcolor"
	"domcolor/pkg/expr"
	"domcolor/pkg/render"
)

// MaxPixels bounds width*height for a single job.
const MaxPixels = 64 << 20

// FieldError is a validation failure for one job field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a job.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "job validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "job validation failed with %d errors:", len(e.Errors))
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  - %s", fe.Error())
	}
	return sb.String()
}

// Validate checks every field and returns a ValidationError listing all
// problems, or nil.
func Validate(job *Job) error {
	var errs []FieldError

	if strings.TrimSpace(job.Formula) == "" {
		errs = append(errs, FieldError{"formula", "must not be empty"})
	} else if _, err := expr.Parse(job.Formula); err != nil {
		errs = append(errs, FieldError{"formula", err.Error()})
	}
	if job.Width <= 0 {
		errs = append(errs, FieldError{"width", fmt.Sprintf("must be positive, got %d", job.Width)})
	}
	if job.Height <= 0 {
		errs = append(errs, FieldError{"height", fmt.Sprintf("must be positive, got %d", job.Height)})
	}
	if job.Width > 0 && job.Height > 0 && render.ExceedsPixels(job.Width, job.Height, MaxPixels) {
		errs = append(errs, FieldError{"width", fmt.Sprintf("%dx%d exceeds %d pixels", job.Width, job.Height, MaxPixels)})
	}
	if err := job.Viewport.Validate(); err != nil {
		errs = append(errs, FieldError{"viewport", err.Error()})
	}
	if _, err := domcolor.ParseFormat(job.Format); err != nil {
		errs = append(errs, FieldError{"format", err.Error()})
	}
	if job.Workers < 0 {
		errs = append(errs, FieldError{"workers", fmt.Sprintf("must not be negative, got %d", job.Workers)})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
