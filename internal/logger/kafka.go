package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// NewKafkaProducer creates the async producer used for shipping logs.
func NewKafkaProducer(brokers []string) (sarama.AsyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create async producer: %w", err)
	}
	return producer, nil
}

// kafkaSink is the state shared by a KafkaHandler and its WithAttrs/WithGroup copies.
type kafkaSink struct {
	producer sarama.AsyncProducer
	topic    string
	entries  chan []byte
	quit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// KafkaHandler ships JSON log entries to a Kafka topic asynchronously. When its
// buffer is full new records are dropped rather than blocking the request.
type KafkaHandler struct {
	sink   *kafkaSink
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewKafkaHandler starts the delivery goroutines for producer.
func NewKafkaHandler(producer sarama.AsyncProducer, topic string, level slog.Leveler, bufferSize int) *KafkaHandler {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	sink := &kafkaSink{
		producer: producer,
		topic:    topic,
		entries:  make(chan []byte, bufferSize),
		quit:     make(chan struct{}),
	}
	sink.wg.Add(2)
	go sink.deliver()
	go sink.drainErrors()
	return &KafkaHandler{sink: sink, level: level}
}

func (s *kafkaSink) deliver() {
	defer s.wg.Done()
	for {
		select {
		case payload := <-s.entries:
			s.send(payload)
		case <-s.quit:
			// flush what is already buffered
			for {
				select {
				case payload := <-s.entries:
					s.send(payload)
				default:
					return
				}
			}
		}
	}
}

func (s *kafkaSink) send(payload []byte) {
	s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder("log"),
		Value: sarama.ByteEncoder(payload),
	}
}

func (s *kafkaSink) drainErrors() {
	defer s.wg.Done()
	for {
		select {
		case err, ok := <-s.producer.Errors():
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "failed to write log to kafka: %v\n", err)
		case <-s.quit:
			return
		}
	}
}

// Enabled checks the handler's minimum level.
func (k *KafkaHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= k.level.Level()
}

// Handle encodes the record and queues it for delivery.
func (k *KafkaHandler) Handle(_ context.Context, record slog.Record) error {
	entry := map[string]any{
		"time":  record.Time.UTC().Format(time.RFC3339Nano),
		"level": record.Level.String(),
		"msg":   record.Message,
	}
	// handler attributes were qualified when bound; only record attributes take the current groups
	for _, a := range k.attrs {
		put(entry, "", a)
	}
	prefix := groupPrefix(k.groups)
	record.Attrs(func(a slog.Attr) bool {
		put(entry, prefix, a)
		return true
	})

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}
	select {
	case k.sink.entries <- payload:
	default:
		fmt.Fprintln(os.Stderr, "kafka log buffer is full, dropping log message")
	}
	return nil
}

func put(entry map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := prefix + a.Key
	switch a.Value.Kind() {
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			put(entry, key+".", ga)
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			entry[key] = err.Error()
			return
		}
		entry[key] = a.Value.Any()
	default:
		entry[key] = a.Value.Any()
	}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups, ".") + "."
}

func (k *KafkaHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *k
	clone.attrs = append(append([]slog.Attr{}, k.attrs...), k.qualify(attrs)...)
	clone.groups = append([]string{}, k.groups...)
	return &clone
}

func (k *KafkaHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return k
	}
	clone := *k
	clone.attrs = append([]slog.Attr{}, k.attrs...)
	clone.groups = append(append([]string{}, k.groups...), name)
	return &clone
}

// qualify bakes the current groups into attribute keys so later groups do not re-prefix them.
func (k *KafkaHandler) qualify(attrs []slog.Attr) []slog.Attr {
	prefix := groupPrefix(k.groups)
	if prefix == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

// Close flushes buffered entries and closes the producer. Safe to call more than once.
func (k *KafkaHandler) Close() error {
	var err error
	k.sink.once.Do(func() {
		close(k.sink.quit)
		k.sink.wg.Wait()
		if cerr := k.sink.producer.Close(); cerr != nil {
			err = fmt.Errorf("failed to close producer: %w", cerr)
		}
	})
	return err
}
