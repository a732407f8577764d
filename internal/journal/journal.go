// internal/journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueue is the Redis list inbound-event records are pushed onto.
const DefaultQueue = "against_events"

// Record holds one inbound event as observed by the client, in arrival
// order, for session diagnostics and replay.
type Record struct {
	GameID    string          `json:"game_id"`
	Seq       int             `json:"seq"`
	Event     string          `json:"event"`
	Player    string          `json:"player,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Journal pushes event records to a Redis queue. A nil *Journal is valid
// and discards everything, so callers never branch on whether journaling
// is configured.
type Journal struct {
	rdb   *redis.Client
	queue string
}

// Connect opens and pings a Redis client for the given address.
func Connect(addr string, db int, queue string) (*Journal, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Journal{rdb: rdb, queue: queue}, nil
}

// Publish serializes the record and pushes it onto the queue.
func (j *Journal) Publish(ctx context.Context, rec Record) error {
	if j == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}
	if err := j.rdb.RPush(ctx, j.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", j.queue, err)
	}
	return nil
}

// Close releases the Redis client.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.rdb.Close()
}
