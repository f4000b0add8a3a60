// Package notify publishes catalog change events over redis pub/sub. The
// presentation layer may subscribe for live updates; nothing in the core
// consumes the feed.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tables with a change feed.
const (
	TableFiles   = "files"
	TableFolders = "folders"
	TableShares  = "share_links"
)

// Event kinds.
const (
	EventInsert  = "insert"
	EventDelete  = "delete"
	EventExpired = "expired"
)

// Change is one catalog change notification.
type Change struct {
	Table   string    `json:"table"`
	Event   string    `json:"event"`
	OwnerID string    `json:"owner_id,omitempty"`
	ID      string    `json:"id,omitempty"`
	At      time.Time `json:"at"`
}

var client *redis.Client

// Init wires the redis client used for publishing. A nil client disables
// the feed, which is fine for tests and the cleanup worker.
func Init(c *redis.Client) {
	client = c
}

func channel(table string) string {
	return "changes:" + table
}

// Publish emits a change event. Failures are logged and ignored; the feed is
// advisory and never affects the write that triggered it.
func Publish(ctx context.Context, table, event, ownerID, id string) {
	if client == nil {
		return
	}
	change := Change{
		Table:   table,
		Event:   event,
		OwnerID: ownerID,
		ID:      id,
		At:      time.Now(),
	}
	payload, err := json.Marshal(change)
	if err != nil {
		log.Printf("[notify] marshal change failed: %v", err)
		return
	}
	if err := client.Publish(ctx, channel(table), payload).Err(); err != nil {
		log.Printf("[notify] publish %s failed: %v", channel(table), err)
	}
}

// Subscribe returns a subscription for one table's change feed. The caller
// owns the subscription and must close it.
func Subscribe(ctx context.Context, table string) *redis.PubSub {
	if client == nil {
		return nil
	}
	return client.Subscribe(ctx, channel(table))
}
