package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"domcolor/pkg/domcolor"
	"domcolor/pkg/metrics"
	"domcolor/pkg/render"
)

// renderRequest is a decoded /render query.
type renderRequest struct {
	formula  string
	width    int
	height   int
	viewport render.Viewport
	format   domcolor.Format
}

var errBadQuery = errors.New("bad query")

func parseRenderQuery(q url.Values, maxPixels int) (renderRequest, error) {
	req := renderRequest{
		formula:  q.Get("f"),
		width:    DefaultWidth,
		height:   DefaultHeight,
		viewport: render.DefaultViewport,
	}
	if req.formula == "" {
		return req, fmt.Errorf("%w: missing formula parameter f", errBadQuery)
	}

	ints := []struct {
		key string
		dst *int
	}{{"w", &req.width}, {"h", &req.height}}
	for _, p := range ints {
		if v := q.Get(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("%w: %s=%q is not an integer", errBadQuery, p.key, v)
			}
			*p.dst = n
		}
	}
	if err := render.ValidateDimensions(req.width, req.height); err != nil {
		return req, err
	}
	if render.ExceedsPixels(req.width, req.height, maxPixels) {
		return req, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", errBadQuery, req.width, req.height, maxPixels)
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"xmin", &req.viewport.XMin},
		{"xmax", &req.viewport.XMax},
		{"ymin", &req.viewport.YMin},
		{"ymax", &req.viewport.YMax},
	}
	for _, p := range floats {
		if v := q.Get(p.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return req, fmt.Errorf("%w: %s=%q is not a number", errBadQuery, p.key, v)
			}
			*p.dst = x
		}
	}

	format, err := domcolor.ParseFormat(q.Get("format"))
	if err != nil {
		return req, err
	}
	req.format = format
	return req, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderQuery(r.URL.Query(), s.config.MaxPixels)
	if err != nil {
		s.collector.RecordRejected(req.format)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RenderTimeout)
	defer cancel()

	done := s.collector.Start()
	data, err := domcolor.RenderContext(ctx, req.width, req.height, req.formula, req.viewport, domcolor.Options{
		Workers: s.config.Workers,
		Format:  req.format,
	})
	done(req.format, req.width*req.height, err)

	if err != nil {
		status := http.StatusInternalServerError
		switch metrics.Result(err) {
		case metrics.ResultBadInput:
			status = http.StatusBadRequest
		case metrics.ResultCanceled:
			status = http.StatusServiceUnavailable
		}
		slog.WarnContext(ctx, "render failed",
			"request_id", requestID(r.Context()),
			"formula", req.formula,
			"error", err,
		)
		writeError(w, status, err)
		return
	}

	slog.DebugContext(ctx, "rendered",
		"request_id", requestID(r.Context()),
		"formula", req.formula,
		"width", req.width,
		"height", req.height,
		"viewport", req.viewport.String(),
		"format", string(req.format),
		"bytes", len(data),
	)
	w.Header().Set("Content-Type", req.format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
