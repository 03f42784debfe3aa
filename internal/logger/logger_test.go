package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/hongminglow/movie-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig() *sarama.Config {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	return cfg
}

// decodeInto returns a checker that captures the JSON payload of a produced message.
func decodeInto(topic string, out *map[string]any) mocks.MessageChecker {
	return func(msg *sarama.ProducerMessage) error {
		if msg.Topic != topic {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithoutKafkaWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := newWithWriter(config.Config{LogLevel: "info", LogFormat: "json"}, "movie-catalog", &buf)
	require.NoError(t, err)
	defer closeFn()

	log.Debug("hidden")
	log.Info("watchlist updated", slog.Int64("user_id", 7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "watchlist updated", entry["msg"])
	assert.Equal(t, "movie-catalog", entry["service"])
	assert.EqualValues(t, 7, entry["user_id"])
}

func TestKafkaHandlerPublishesEntries(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, mockConfig())
	var first, second map[string]any
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(decodeInto("catalog-logs", &first))
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(decodeInto("catalog-logs", &second))

	handler := NewKafkaHandler(producer, "catalog-logs", slog.LevelInfo, 10)
	log := slog.New(handler).With(slog.String("service", "movie-catalog"))

	log.Debug("below threshold")
	log.Info("movie added", slog.String("title", "The Matrix"))
	log.WithGroup("request").Error("lookup failed", slog.String("path", "/api/movies"), slog.Any("error", errors.New("boom")))

	require.NoError(t, handler.Close())
	require.NoError(t, handler.Close())

	assert.Equal(t, "movie added", first["msg"])
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "movie-catalog", first["service"])
	assert.Equal(t, "The Matrix", first["title"])

	assert.Equal(t, "lookup failed", second["msg"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "movie-catalog", second["service"])
	assert.Equal(t, "/api/movies", second["request.path"])
	assert.Equal(t, "boom", second["request.error"])
}

func TestKafkaHandlerQualifiesAttrsByGroupAtBindTime(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, mockConfig())
	var entry map[string]any
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(decodeInto("catalog-logs", &entry))

	handler := NewKafkaHandler(producer, "catalog-logs", slog.LevelInfo, 10)
	log := slog.New(handler).
		With(slog.String("service", "movie-catalog")).
		WithGroup("request").
		With(slog.String("id", "req-1")).
		WithGroup("watchlist")

	log.Info("movie added",
		slog.Int64("user_id", 7),
		slog.Group("movie", slog.Int64("id", 42), slog.String("title", "Heat")))

	require.NoError(t, handler.Close())

	assert.Equal(t, "movie-catalog", entry["service"])
	assert.NotContains(t, entry, "request.service")
	assert.Equal(t, "req-1", entry["request.id"])
	assert.NotContains(t, entry, "request.watchlist.id")
	assert.EqualValues(t, 7, entry["request.watchlist.user_id"])
	assert.EqualValues(t, 42, entry["request.watchlist.movie.id"])
	assert.Equal(t, "Heat", entry["request.watchlist.movie.title"])
}

func TestKafkaHandlerDropsWhenBufferFull(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, mockConfig())
	handler := NewKafkaHandler(producer, "catalog-logs", slog.LevelInfo, 1)

	// stop delivery so the buffer cannot drain
	handler.sink.once.Do(func() {})
	close(handler.sink.quit)
	handler.sink.wg.Wait()

	log := slog.New(handler)
	log.Info("kept")
	log.Info("dropped")

	assert.Len(t, handler.sink.entries, 1)
	require.NoError(t, producer.Close())
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(multi)

	log.Info("info only")
	log.Error("everyone")

	assert.Contains(t, a.String(), "info only")
	assert.Contains(t, a.String(), "everyone")
	assert.NotContains(t, b.String(), "info only")
	assert.Contains(t, b.String(), "everyone")
	assert.NoError(t, multi.CloseAll())
}
