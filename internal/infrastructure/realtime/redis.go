// Package realtime delivers stored notifications live over Redis pub/sub.
// Each recipient has their own topic; delivery is at-most-once, to clients
// subscribed at publish time. The persisted notification record remains the
// durable source of truth.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const topicPrefix = "notifications:"

// Publisher implements ports.RealtimePublisher on Redis pub/sub.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) ports.RealtimePublisher {
	return &Publisher{client: client}
}

// Publish sends the JSON-encoded notification to the recipient's topic.
// A publish with zero subscribers is not an error.
func (p *Publisher) Publish(ctx context.Context, userID string, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := p.client.Publish(ctx, Topic(userID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Topic returns the pub/sub channel name for a recipient. Socket gateways
// subscribe with the same function to receive a user's live feed.
func Topic(userID string) string {
	return topicPrefix + userID
}
