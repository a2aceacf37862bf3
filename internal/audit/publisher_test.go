package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublisher_Record(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	messages, err := pubsub.Subscribe(context.Background(), Topic)
	require.NoError(t, err)

	publisher := NewPublisher(pubsub, zap.NewNop())
	publisher.Record(context.Background(), Event{
		Subject:   "alice@example.com",
		Type:      EventLoginSuccess,
		IP:        "192.0.2.1",
		UserAgent: "go-test",
	})

	select {
	case msg := <-messages:
		var event Event
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "alice@example.com", event.Subject)
		assert.Equal(t, EventLoginSuccess, event.Type)
		assert.Equal(t, "192.0.2.1", event.IP)
		assert.NotEmpty(t, event.ID, "publisher stamps an event ID")
		assert.False(t, event.Timestamp.IsZero(), "publisher stamps a timestamp")
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no audit event received")
	}
}

func TestPublisher_Record_SinkFailureIsSwallowed(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	require.NoError(t, pubsub.Close())

	// Publishing to a closed pub/sub fails internally; Record must not panic
	// or surface anything to the caller.
	publisher := NewPublisher(pubsub, zap.NewNop())
	publisher.Record(context.Background(), Event{Subject: "alice@example.com", Type: EventLoginFailure})
}
