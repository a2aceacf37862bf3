package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic is the stream audit events travel on between the publisher and the
// persistence worker.
const Topic = "auth.audit"

// Recorder accepts audit events. Recording is fire-and-forget: a failing
// sink never fails the authentication flow that emitted the event.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Publisher emits audit events onto a watermill topic.
type Publisher struct {
	publisher message.Publisher
	topic     string
	logger    *zap.Logger
}

// NewPublisher builds a Recorder over any watermill publisher.
func NewPublisher(publisher message.Publisher, logger *zap.Logger) *Publisher {
	return &Publisher{publisher: publisher, topic: Topic, logger: logger}
}

// Record stamps missing ID/timestamp fields and publishes the event. Errors
// are logged and swallowed.
func (p *Publisher) Record(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal audit event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)))
		return
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("publish audit event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}

// NopRecorder discards all events.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Event) {}
