package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/daft"
)

const maxBodySize = 1 << 20

// HTTPHandler exposes the tools over HTTP:
//
//	GET  /healthz       liveness and version
//	GET  /tools         tool list with input schemas
//	POST /tools/{name}  call a tool; the body is its arguments object
//
// A successful call answers 200 with the payload. A failed call answers
// with the error envelope and a status derived from its kind.
func (s *Server) HTTPHandler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		info := serverInfo()
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"name":    info["name"],
			"version": info["version"],
		})
	})

	r.Get("/tools", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"tools": s.tools})
	})

	r.Post("/tools/{name}", s.handleHTTPCall)

	return r
}

func (s *Server) handleHTTPCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, invalidArgs("request body too large", nil))
		return
	}

	result, err := s.Call(r.Context(), name, body)
	if errors.Is(err, ErrUnknownTool) {
		respondJSON(w, http.StatusNotFound, &ToolError{Kind: daft.KindValidation, Stage: "dispatch", Message: err.Error()})
		return
	}
	if err != nil {
		te := toToolError(err)
		respondJSON(w, statusFor(te.Kind), te)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func statusFor(kind daft.Kind) int {
	switch kind {
	case daft.KindValidation:
		return http.StatusBadRequest
	case daft.KindAuth:
		return http.StatusUnauthorized
	case daft.KindNetwork, daft.KindAPI, daft.KindScraper:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

// requestLogger tags each request with an id, echoed in X-Request-ID, and
// logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		log := logger.With(
			"request_id", requestID,
			"http_method", r.Method,
			"http_path", r.URL.Path,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log.Info("request finished",
			"status_code", ww.Status(),
			"bytes_written", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
