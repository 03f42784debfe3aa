package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/movie-catalog/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid", &service.Error{Kind: service.KindInvalidInput, Message: "bad"}, http.StatusBadRequest, "bad"},
		{"not found", &service.Error{Kind: service.KindNotFound, Message: "gone"}, http.StatusNotFound, "gone"},
		{"conflict", &service.Error{Kind: service.KindConflict, Message: "dup"}, http.StatusConflict, "dup"},
		{"unauthorized", &service.Error{Kind: service.KindUnauthorized, Message: "who"}, http.StatusUnauthorized, "who"},
		{"forbidden", &service.Error{Kind: service.KindForbidden, Message: "no"}, http.StatusForbidden, "no"},
		{"internal keeps cause private", &service.Error{Kind: service.KindInternal, Message: "Error fetching movies", Err: errors.New("pq: password leaked")}, http.StatusInternalServerError, "Error fetching movies"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, msgInternalFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil), logger, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"message":"`+tc.message+`"}`, rec.Body.String())
		})
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	rec := httptest.NewRecorder()
	assert.False(t, decodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`+"\n"))
	rec = httptest.NewRecorder()
	assert.True(t, decodeJSON(rec, req, &dst))
	assert.Equal(t, "a", dst.Name)
}
