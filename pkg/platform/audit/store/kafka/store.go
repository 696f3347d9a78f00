// Package kafka ships audit events to a Kafka topic, keyed by participant so
// the events of one participant stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "smp/pkg/platform/audit"
)

// Producer is the slice of *kgo.Client the store uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Store implements audit.Store by producing one record per event.
type Store struct {
	producer Producer
	admin    *kadm.Client
	topic    string
}

// New connects to brokers and produces to topic.
func New(brokers []string, topic string) (*Store, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	s := NewWithProducer(client, topic)
	s.admin = kadm.NewClient(client)
	return s, nil
}

// EnsureTopic creates the audit topic with the broker's default partition
// count and replication factor. An existing topic is left as it is.
func (s *Store) EnsureTopic(ctx context.Context) error {
	if s.admin == nil {
		return errors.New("kafka store has no admin client")
	}
	resp, err := s.admin.CreateTopic(ctx, -1, -1, nil, s.topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic %s: %w", s.topic, err)
	}
	return nil
}

// NewWithProducer wraps an existing producer.
func NewWithProducer(p Producer, topic string) *Store {
	return &Store{producer: p, topic: topic}
}

// payload is the JSON document written as the record value.
type payload struct {
	Category      string `json:"category"`
	Timestamp     string `json:"timestamp"`
	ParticipantID string `json:"participant_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	Action        string `json:"action"`
	Reason        string `json:"reason,omitempty"`
	Severity      string `json:"severity"`
	OperationID   string `json:"operation_id,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

func encode(event audit.Event) ([]byte, error) {
	return json.Marshal(payload{
		Category:      string(event.Category),
		Timestamp:     event.Timestamp.UTC().Format(time.RFC3339Nano),
		ParticipantID: event.ParticipantID,
		UserID:        event.UserID,
		Action:        event.Action,
		Reason:        event.Reason,
		Severity:      string(event.Severity),
		OperationID:   event.OperationID,
		RequestID:     event.RequestID,
	})
}

// Append produces the event and waits for the broker acknowledgement.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	value, err := encode(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.ParticipantID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "category", Value: []byte(event.Category)},
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (s *Store) Close() error {
	s.producer.Close()
	return nil
}
