package worker

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/audit"
	"github.com/spec-kit/auth-service/internal/repository"
)

// StartAuditWriter drains the audit topic into persistent storage. It
// returns once the subscription is established; consumption runs in the
// background until ctx is canceled or the subscriber closes. Events that
// cannot be decoded or persisted are logged and dropped, matching the
// fire-and-forget contract of the trail.
func StartAuditWriter(ctx context.Context, subscriber message.Subscriber, repo repository.AuditEventRepository, logger *zap.Logger) error {
	messages, err := subscriber.Subscribe(ctx, audit.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			writeAuditMessage(ctx, msg, repo, logger)
		}
	}()
	return nil
}

func writeAuditMessage(ctx context.Context, msg *message.Message, repo repository.AuditEventRepository, logger *zap.Logger) {
	defer msg.Ack()

	var event audit.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logger.Error("decode audit event",
			zap.Error(err),
			zap.String("message_id", msg.UUID))
		return
	}
	if err := repo.Insert(ctx, &event); err != nil {
		logger.Error("persist audit event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}
