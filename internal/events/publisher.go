package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the name of the travel plan events stream.
	StreamName = "TRAVEL_PLANS"

	// SubjectPrefix is the prefix for all plan event subjects.
	SubjectPrefix = "travel"
)

// PlanCreatedEvent records that a plan was generated.
type PlanCreatedEvent struct {
	PlanID          string    `json:"plan_id"`
	TravelStyle     string    `json:"travel_style"`
	Destination     string    `json:"destination"`
	PipelinePath    string    `json:"pipeline_path"`
	Days            int       `json:"days"`
	ConfidenceScore float64   `json:"confidence_score"`
	ProcessingTime  float64   `json:"processing_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// AmbiguitiesDetectedEvent records a clarification round.
type AmbiguitiesDetectedEvent struct {
	TravelStyle     string    `json:"travel_style"`
	Destination     string    `json:"destination"`
	PipelinePath    string    `json:"pipeline_path"`
	AmbiguityCount  int       `json:"ambiguity_count"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// Publisher publishes plan lifecycle events to JetStream. A nil Publisher is
// valid and publishes nothing.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by a connected client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// EnsureStream ensures the travel plan events stream exists.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Travel plan generation and clarification events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// PublishPlanCreated publishes a plan-created event. No-op on a nil receiver.
func (p *Publisher) PublishPlanCreated(ctx context.Context, ev *PlanCreatedEvent) error {
	if p == nil {
		return nil
	}
	subject := fmt.Sprintf("%s.%s.plan.created", SubjectPrefix, ev.TravelStyle)
	return p.publish(ctx, subject, ev)
}

// PublishAmbiguitiesDetected publishes an ambiguity-detection event. No-op on
// a nil receiver.
func (p *Publisher) PublishAmbiguitiesDetected(ctx context.Context, ev *AmbiguitiesDetectedEvent) error {
	if p == nil {
		return nil
	}
	subject := fmt.Sprintf("%s.%s.ambiguities.detected", SubjectPrefix, ev.TravelStyle)
	return p.publish(ctx, subject, ev)
}

func (p *Publisher) publish(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.client.JetStream().Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
