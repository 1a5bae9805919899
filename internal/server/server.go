// Package server exposes the report renderer over HTTP: a POST
// /render endpoint returning PDF bytes and a dependency-free GET
// /health check.
//
// The render call itself is synchronous and non-interruptible, so the
// handler offloads it to a goroutine and imposes a wall-clock timeout,
// answering 504 and abandoning the worker when the budget is spent.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/apiverify/reportgen/internal/config"
	"github.com/apiverify/reportgen/internal/layout"
	"github.com/apiverify/reportgen/internal/model"
	"github.com/apiverify/reportgen/internal/render"
)

// maxBodyBytes bounds the request body accepted by /render.
const maxBodyBytes = 10 << 20

// Server renders validation payloads to PDF over HTTP.
type Server struct {
	addr    string
	timeout time.Duration
	logger  *charmlog.Logger
	schema  *jsonschema.Schema

	// renderFn is the full payload-to-PDF pipeline. Tests substitute
	// it to exercise timeout and failure paths.
	renderFn func(*model.ValidationReport) ([]byte, error)
}

// New builds a Server from configuration. The payload schema is
// compiled once here; compilation failure is a programming error in
// the embedded schema and surfaces immediately.
func New(cfg *config.Config, logger *charmlog.Logger) (*Server, error) {
	profile, err := layout.ProfileByName(cfg.Render.Profile)
	if err != nil {
		return nil, err
	}

	raw, err := jsonschema.UnmarshalJSON(strings.NewReader(model.Schema))
	if err != nil {
		return nil, fmt.Errorf("parsing payload schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("validation-report.schema.json", raw); err != nil {
		return nil, fmt.Errorf("adding payload schema: %w", err)
	}
	compiled, err := compiler.Compile("validation-report.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling payload schema: %w", err)
	}

	opts := layout.Options{
		ClipLimit: cfg.Render.ClipLimit,
		WrapEvery: cfg.Render.WrapEvery,
	}
	renderer := render.New()

	s := &Server{
		addr:    cfg.Server.Addr,
		timeout: cfg.Server.RenderTimeout(),
		logger:  logger,
		schema:  compiled,
	}
	s.renderFn = func(rep *model.ValidationReport) ([]byte, error) {
		return renderer.Render(layout.Build(rep, profile, opts))
	}
	return s, nil
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type renderResult struct {
	data []byte
	err  error
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	// Structural usability check: the payload must at least be a
	// JSON object whose fields entry, when present, is an array of
	// objects. Everything finer-grained is defaulted, not rejected.
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		http.Error(w, "request body is not valid JSON", http.StatusBadRequest)
		return
	}
	if err := s.schema.Validate(inst); err != nil {
		http.Error(w, fmt.Sprintf("payload is not structurally usable: %v", err), http.StatusBadRequest)
		return
	}

	rep, err := model.Decode(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("payload is not structurally usable: %v", err), http.StatusBadRequest)
		return
	}

	// The render has no cancellation hook; run it on a worker and
	// abandon it on timeout. The buffered channel lets the worker
	// finish and be collected either way.
	resCh := make(chan renderResult, 1)
	go func() {
		data, err := s.renderFn(rep)
		resCh <- renderResult{data: data, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		s.logger.Error("PDF generation timed out", "timeout", s.timeout)
		http.Error(w, "PDF generation timed out", http.StatusGatewayTimeout)
		return
	case res := <-resCh:
		switch {
		case errors.Is(res.err, render.ErrNoContent):
			http.Error(w, res.err.Error(), http.StatusBadRequest)
			return
		case res.err != nil:
			s.logger.Error("PDF generation failed", "err", res.err)
			http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=report.pdf")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(res.data)
	}
}

// logRequests logs one line per request with method, path, status,
// and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

// allowCORS applies the permissive policy of the original service.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
