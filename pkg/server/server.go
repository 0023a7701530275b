package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorflow/pkg/buildinfo"
	"github.com/matzehuels/anchorflow/pkg/errors"
	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/observability"
	"github.com/matzehuels/anchorflow/pkg/pipeline"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes bounds the size of a scene upload.
	DefaultMaxBodyBytes = 1 << 20
)

// Config configures a Server.
type Config struct {
	Runner       *pipeline.Runner
	Logger       *log.Logger
	Timeout      time.Duration
	MaxBodyBytes int64

	// Counters, when set, is served at GET /v1/stats. The caller registers it
	// with the observability hooks.
	Counters *observability.Counters
}

// Server serves the solve API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	timeout  time.Duration
	maxBody  int64
	counters *observability.Counters
	router   chi.Router
}

// New creates a server. A nil Runner gets an uncached runner.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		timeout:  cfg.Timeout,
		maxBody:  cfg.MaxBodyBytes,
		counters: cfg.Counters,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/graph", s.handleGraph)
		if s.counters != nil {
			r.Get("/stats", s.handleStats)
		}
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, errors.New(errors.ErrCodeNotFound, "no route for %s %s", req.Method, req.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	l, solveHit, err := s.runner.SolveWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Resolved", strconv.FormatBool(l.Resolved))

	if format == pipeline.FormatJSON {
		data, err := layout.MarshalLayout(l)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
			return
		}
		writeCache(w, solveHit)
		writeBytes(w, contentTypes[format], data)
		return
	}

	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCache(w, solveHit && renderHit)
	writeBytes(w, contentTypes[format], artifacts[format])
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	data, hit, err := s.runner.GraphWithCacheInfo(r.Context(), format, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCache(w, hit)
	writeBytes(w, contentTypes[format], data)
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// options decodes the scene body and the query parameters shared by the
// solve and graph endpoints.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	format, err := sceneFormat(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "scene exceeds %d bytes", s.maxBody)
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	sc, err := scene.Parse(body, format)
	if err != nil {
		return pipeline.Options{}, err
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Scene:  sc,
		Logger: s.logger.With("request_id", RequestID(r.Context())),
	}
	for name, dst := range map[string]*bool{
		"optimize_wrap": &opts.OptimizeWrap,
		"trace":         &opts.Trace,
		"labels":        &opts.Labels,
		"guidelines":    &opts.Guidelines,
		"refresh":       &opts.Refresh,
		"values":        &opts.Values,
	} {
		if *dst, err = queryBool(q.Get(name)); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "query %s", name)
		}
	}
	for name, dst := range map[string]*int{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.Atoi(v); err != nil || *dst < 0 {
				return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "query %s: %q is not a size", name, v)
			}
		}
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil || opts.Scale <= 0 {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "query scale: %q is not a positive number", v)
		}
	}
	return opts, nil
}

func sceneFormat(r *http.Request) (scene.Format, error) {
	if v := r.URL.Query().Get("scene_format"); v != "" {
		return scene.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return scene.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "content type")
	}
	switch mt {
	case "application/json":
		return scene.FormatJSON, nil
	case "application/toml", "text/toml":
		return scene.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return scene.FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
		Subject string      `json:"subject,omitempty"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "err", err)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)
	body.Error.Subject = errors.Subject(err)
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeCache(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
