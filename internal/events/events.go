package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"kycapi/internal/config"
)

const (
	TypeApplicationSubmitted     = "kyc.application.submitted"
	TypeApplicationStatusChanged = "kyc.application.status_changed"
)

// Event is the payload published for every application lifecycle change.
type Event struct {
	Type           string    `json:"type"`
	ApplicationID  string    `json:"applicationId"`
	Email          string    `json:"email"`
	InvestorType   string    `json:"investorType,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher emits application events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic, keyed by applicant email so
// events for one applicant stay ordered within a partition.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher creates a synchronous writer for cfg.Topic.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.Email),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// Nop discards every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// New returns a Kafka publisher when brokers are configured, Nop otherwise.
func New(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(cfg)
}
