package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hoangvle/scholarfolio/internal/config"
)

const (
	TopicContentEvents = "content.events"
)

const (
	ContentEventProfileUpdated    = "profile.updated"
	ContentEventSectionCreated    = "section.created"
	ContentEventSectionUpdated    = "section.updated"
	ContentEventSectionDeleted    = "section.deleted"
	ContentEventSectionsReordered = "sections.reordered"
)

// ContentEventPayload describes one content mutation for downstream
// consumers (cache warmers, audit trail).
type ContentEventPayload struct {
	EventType  string    `json:"event_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	SectionID  string    `json:"section_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ContentEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	contentWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicContentEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ContentEventsWriter: contentWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishContentEvent(ctx context.Context, payload ContentEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal content event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	}
	if err := c.ContentEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("cannot publish content event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		c.ContentEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
