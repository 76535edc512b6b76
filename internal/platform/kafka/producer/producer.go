// Package producer implements the notification publisher on Kafka. One record
// per payload, keyed by account uid so per-account ordering holds within a
// partition. Delivery retries beyond the client's own produce handling are the
// caller's concern.
package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"idrelay/internal/notification/models"
)

// Config captures Kafka connection settings.
type Config struct {
	Brokers           []string
	Topic             string
	EnsureTopic       bool
	Partitions        int32
	ReplicationFactor int16
}

// Producer publishes notification payloads to a single Kafka topic.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects to the brokers and, when configured, ensures the topic exists.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if cfg.EnsureTopic {
		if err := ensureTopic(ctx, client, cfg); err != nil {
			client.Close()
			return nil, err
		}
	}

	return &Producer{client: client, topic: cfg.Topic, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, cfg Config) error {
	adm := kadm.NewClient(client)

	partitions := cfg.Partitions
	if partitions <= 0 {
		partitions = 3
	}
	replication := cfg.ReplicationFactor
	if replication <= 0 {
		replication = 1
	}

	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", cfg.Topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", res.Topic, res.Err)
		}
	}
	return nil
}

// Publish produces one record synchronously. The handoff is bounded by ctx:
// cancellation aborts the wait and surfaces the context error.
func (p *Producer) Publish(ctx context.Context, payload models.Payload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(payload.AccountUID()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(payload.PayloadType())},
		},
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %q: %w", p.topic, err)
	}

	if p.logger != nil {
		p.logger.DebugContext(ctx, "payload produced",
			"topic", p.topic,
			"type", payload.PayloadType(),
			"uid", payload.AccountUID(),
		)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close() {
	p.client.Close()
}
