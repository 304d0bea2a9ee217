// Package httpapi exposes the calculators as JSON endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/logging"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/output"
	"github.com/rgehrsitz/finlit/internal/validation"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

// Server holds the dependencies shared by every handler.
type Server struct {
	engine  *calculation.Engine
	logger  *zap.Logger
	version string
	timeout time.Duration
}

// Option customises a Server.
type Option func(*Server)

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithTimeout bounds each request; Monte Carlo runs stop between batches
// when it expires.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewServer wires an engine and logger. A nil engine uses the default rules.
func NewServer(engine *calculation.Engine, logger *zap.Logger, opts ...Option) *Server {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, logger: logger, version: "dev", timeout: defaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, NewError("route_not_found", fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(api chi.Router) {
		api.Get("/calculators", s.listCalculators)
		api.Post("/validate/{calculator}", s.validate)
		api.Post("/{calculator}", s.calculate)
	})
	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) listCalculators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"calculators": calculation.Calculators})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	name, schema, ok := lookupCalculator(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	result := validation.ValidateFields(fields.Strings(), schema)
	logging.FromContext(r.Context()).Debug("validated fields",
		zap.String("calculator", name),
		zap.Bool("valid", result.IsValid),
	)
	writeJSON(w, http.StatusOK, result)
}

// calculate runs a calculator. Field errors do not fail the request; they
// are reported in the validation part of the response. ?format=table or
// ?format=csv returns the rendered report instead of JSON.
func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	name, _, ok := lookupCalculator(w, r)
	if !ok {
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	var formatter output.Formatter
	if format != "" && format != "json" {
		if formatter = output.GetFormatterByName(format); formatter == nil {
			WriteError(r.Context(), w, NewError("unsupported_format",
				fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest).
				WithDetails(map[string]any{"formats": output.AvailableFormatAliases()}))
			return
		}
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	ev, err := s.engine.Evaluate(r.Context(), name, fields)
	if err != nil {
		s.writeCalculationError(w, r, err)
		return
	}

	if formatter == nil {
		writeJSON(w, http.StatusOK, ev)
		return
	}
	report, err := output.BuildEvaluationReport(name, ev)
	if err == nil {
		var body []byte
		if body, err = formatter.Format(report); err == nil {
			contentType := "text/plain; charset=utf-8"
			if formatter.Name() == "csv" {
				contentType = "text/csv; charset=utf-8"
			}
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}
	}
	logging.FromContext(r.Context()).Error("failed to render report", zap.Error(err))
	WriteError(r.Context(), w, NewError("render_failed", "failed to render report", http.StatusInternalServerError))
}

func (s *Server) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var calcErr *calculation.CalculationError
	switch {
	case errors.Is(err, calculation.ErrCancelled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		WriteError(ctx, w, NewError("request_cancelled", "the calculation was cancelled before it completed", http.StatusServiceUnavailable))
	case errors.As(err, &calcErr):
		WriteError(ctx, w, NewError("calculation_failed", calcErr.Error(), http.StatusUnprocessableEntity).
			WithDetails(map[string]any{"operation": calcErr.Operation}))
	default:
		logging.FromContext(ctx).Error("calculation failed", zap.Error(err))
		WriteError(ctx, w, NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
	}
}

func lookupCalculator(w http.ResponseWriter, r *http.Request) (string, validation.Schema, bool) {
	name := strings.ToLower(chi.URLParam(r, "calculator"))
	schema, ok := validation.Schemas[name]
	if !ok {
		WriteError(r.Context(), w, NewError("unknown_calculator", fmt.Sprintf("unknown calculator %q", name), http.StatusNotFound).
			WithDetails(map[string]any{"calculators": calculation.Calculators}))
		return "", nil, false
	}
	return name, schema, true
}

// decodeFields reads a flat JSON object. Numbers are kept as json.Number so
// currency amounts are not rounded through float64.
func decodeFields(w http.ResponseWriter, r *http.Request) (numeric.Fields, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	fields := numeric.Fields{}
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(r.Context(), w, NewError("payload_too_large", "request body is too large", http.StatusRequestEntityTooLarge))
			return nil, false
		}
		WriteError(r.Context(), w, NewError("invalid_json", "request body must be a JSON object: "+err.Error(), http.StatusBadRequest))
		return nil, false
	}
	return fields, true
}
