package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/service"
)

const (
	maxBodyBytes       = 1 << 20
	msgInvalidJSON     = "invalid JSON payload"
	msgInternalFailure = "Internal server error"
)

// statusFor maps a service failure kind onto an HTTP status.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports err to the client. Internal causes are logged and
// never echoed.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.KindInternal, Message: msgInternalFailure, Err: err}
	}
	status := statusFor(se.Kind)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), se.Message,
			slog.String("request_id", middleware.RequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", se.Err))
	}
	respond.Error(w, status, se.Message)
}

// decodeJSON reads a single JSON object into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		respond.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
