package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hongminglow/movie-catalog/internal/config"
)

// ParseLevel maps debug/info/warn/error onto slog levels; unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the service logger: stdout always, Kafka when brokers are configured.
// The returned close function flushes and releases the Kafka producer.
func New(cfg config.Config, service string) (*slog.Logger, func() error, error) {
	return newWithWriter(cfg, service, os.Stdout)
}

func newWithWriter(cfg config.Config, service string, w io.Writer) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler
	if cfg.LogFormat == "json" {
		stdout = slog.NewJSONHandler(w, opts)
	} else {
		stdout = slog.NewTextHandler(w, opts)
	}

	if len(cfg.KafkaBrokers) == 0 {
		return slog.New(stdout).With(slog.String("service", service)), func() error { return nil }, nil
	}

	producer, err := NewKafkaProducer(cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	kafka := NewKafkaHandler(producer, cfg.KafkaTopic, level, cfg.LogBufferSize)
	multi := NewMultiHandler(stdout, kafka)
	return slog.New(multi).With(slog.String("service", service)), multi.CloseAll, nil
}

// MultiHandler fans records out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler combines handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports whether any handler wants the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every handler that wants it and returns the first error.
func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return NewMultiHandler(handlers...)
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return NewMultiHandler(handlers...)
}

// CloseAll closes every handler that has a Close method.
func (m *MultiHandler) CloseAll() error {
	var errs []error
	for _, h := range m.handlers {
		if closer, ok := h.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
