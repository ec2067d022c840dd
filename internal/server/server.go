// Package server exposes the calculators over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/toolhub/internal/calculator"
	"github.com/iwvelando/toolhub/internal/config"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/output"
	"github.com/iwvelando/toolhub/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the HTTP handler.
type Options struct {
	Service        *calculator.Service
	MaxRequestSize int64
	Version        string
	RateLimit      RateLimitConfig
}

// Handler serves the calculator API.
type Handler struct {
	logger         *zap.Logger
	service        *calculator.Service
	maxRequestSize int64
	version        string
	limiter        *rateLimiter
	root           http.Handler
}

// NewHandler constructs the HTTP handler that serves the calculator API.
// Close releases the rate limiter once the handler is no longer used.
func NewHandler(logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	if opts.Service == nil {
		opts.Service = calculator.New(logger, nil)
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &Handler{
		logger:         logger,
		service:        opts.Service,
		maxRequestSize: opts.MaxRequestSize,
		version:        trimmedVersion,
	}
	if opts.RateLimit.RequestsPerSecond > 0 {
		h.limiter = newRateLimiter(opts.RateLimit)
	}

	mux := http.NewServeMux()

	// Single calculations (JSON)
	mux.Handle("/api/loan", h.limited(serveCalculation(h, "server.handleLoan", h.service.Loan, presentLoan)))
	mux.Handle("/api/mortgage", h.limited(serveCalculation(h, "server.handleMortgage", h.service.Mortgage, presentMortgage)))
	mux.Handle("/api/growth", h.limited(serveCalculation(h, "server.handleGrowth", h.service.Growth, presentGrowth)))
	mux.Handle("/api/tip", h.limited(serveCalculation(h, "server.handleTip", h.service.Tip, presentTip)))
	mux.Handle("/api/percent", h.limited(serveCalculation(h, "server.handlePercent", h.service.Percent, presentPercent)))

	// Batch calculation file (multipart upload or raw YAML)
	mux.Handle("/api/batch", h.limited(http.HandlerFunc(h.handleBatch)))

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)

	h.root = withRequestID(logger, mux)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// Close stops background work started by the handler.
func (h *Handler) Close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}

func (h *Handler) limited(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return h.withRateLimit(next)
}

func presentLoan(r calculator.LoanResult, schedule bool) calculator.LoanResult {
	r.Result = r.Result.Rounded()
	if !schedule {
		r.Result = r.Result.WithoutSchedule()
	}
	return r
}

func presentMortgage(r calculator.MortgageResult, schedule bool) calculator.MortgageResult {
	r.Result = r.Result.Rounded()
	if !schedule {
		r.Result = r.Result.WithoutSchedule()
	}
	return r
}

func presentGrowth(r calculator.GrowthResult, schedule bool) calculator.GrowthResult {
	r.Result = r.Result.Rounded()
	if !schedule {
		r.Result = r.Result.WithoutBreakdown()
	}
	return r
}

func presentTip(r calculator.TipResult, _ bool) calculator.TipResult {
	r.TipResult = r.TipResult.Rounded()
	return r
}

func presentPercent(r calculator.PercentResult, _ bool) calculator.PercentResult {
	r.Result = r.Result.Rounded()
	return r
}

// serveCalculation decodes a JSON request, runs calc and writes the rounded result.
func serveCalculation[Req, Res any](h *Handler, op string, calc func(context.Context, Req) (Res, error), present func(Res, bool) Res) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		schedule, err := boolQuery(r, "schedule", true)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
		var req Req
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			h.respondReadError(w, err, "invalid request body", op)
			return
		}

		result, err := calc(r.Context(), req)
		if err != nil {
			h.respondCalculationError(w, err, op)
			return
		}

		h.writeJSON(w, http.StatusOK, present(result, schedule))
	})
}

type batchResponse struct {
	Results    calculator.BatchResult `json:"results"`
	Count      int                    `json:"count"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	schedule, err := boolQuery(r, "schedule", true)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format != "" && format != "json" {
		if err := validation.ValidateOutputFormat(format); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	data, ok := h.readBatchBody(w, r, op)
	if !ok {
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	warnings := conf.ValidateConfiguration()
	batch, batchWarnings, err := h.service.Batch(r.Context(), conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to run calculations: %v", err), op)
		return
	}
	warnings = append(warnings, batchWarnings...)

	if !schedule {
		batch = batch.WithoutSchedules()
	}

	switch format {
	case constants.OutputFormatCSV:
		h.writeReport(w, "text/csv", op, func(buf *bytes.Buffer) error { return output.CsvFormat(buf, batch) })
		return
	case constants.OutputFormatPretty:
		h.writeReport(w, "text/plain; charset=utf-8", op, func(buf *bytes.Buffer) error { return output.PrettyFormat(buf, batch, schedule) })
		return
	}

	echo, err := yaml.Marshal(config.Configuration{
		Loans:     conf.Loans,
		Mortgages: conf.Mortgages,
		Growth:    conf.Growth,
		Tips:      conf.Tips,
		Percents:  conf.Percents,
	})
	if err != nil {
		h.logger.Warn("failed to encode configuration",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	h.logger.Info("batch request processed",
		zap.String("op", op),
		zap.String("request_id", w.Header().Get(requestIDHeader)),
		zap.Int("calculations", batch.Count()),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, batchResponse{
		Results:    batch.Rounded(),
		Count:      batch.Count(),
		Warnings:   warnings,
		Duration:   time.Since(start).String(),
		ConfigYAML: string(echo),
	})
}

// readBatchBody returns the uploaded "file" part of a multipart request, or
// the raw body for any other content type.
func (h *Handler) readBatchBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			h.respondReadError(w, err, "failed to read configuration", op)
			return nil, false
		}
		if len(bytes.TrimSpace(data)) == 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
			return nil, false
		}
		return data, true
	}

	if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
		h.respondReadError(w, err, "failed to parse upload", op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func boolQuery(r *http.Request, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func (h *Handler) writeReport(w http.ResponseWriter, contentType, op string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write report", zap.String("op", op), zap.Error(err))
	}
}

// respondReadError maps body read and decode failures onto 413 or 400.
func (h *Handler) respondReadError(w http.ResponseWriter, err error, prefix, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", prefix, err), op)
}

func (h *Handler) respondCalculationError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, validation.ErrInvalidInput) {
		messages := validation.Messages(err)
		h.logger.Warn("calculation rejected",
			zap.String("op", op),
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.Strings("messages", messages),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    validation.ErrInvalidInput.Error(),
			Messages: messages,
		})
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("calculation failed: %v", err), op)
}

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func (h *Handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", w.Header().Get(requestIDHeader)),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request failed", fields...)
	}

	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes payload before committing the status, so an encoding
// failure still reaches the client as a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
