// Package cache keeps short-lived copies of subscription summaries and the
// ids of already-processed webhook deliveries in redis. Every function is a
// no-op returning a miss when redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"timestamper-api/database"
	"timestamper-api/internal/domain/subscriptions"
)

const (
	summaryTTL = 30 * time.Second
	eventTTL   = 24 * time.Hour
)

func summaryKey(userID string) string { return "sub:summary:" + userID }
func eventKey(eventID string) string  { return "webhook:event:" + eventID }

func GetSummary(ctx context.Context, userID string) (subscriptions.Summary, bool) {
	var summary subscriptions.Summary
	if database.Redis == nil {
		return summary, false
	}

	raw, err := database.Redis.Get(ctx, summaryKey(userID)).Bytes()
	if err != nil {
		return summary, false
	}
	if err := json.Unmarshal(raw, &summary); err != nil {
		return summary, false
	}
	return summary, true
}

func SetSummary(ctx context.Context, userID string, summary subscriptions.Summary) {
	if database.Redis == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, summaryKey(userID), raw, summaryTTL)
}

// InvalidateSummary drops the cached summary after any subscription write.
func InvalidateSummary(ctx context.Context, userID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, summaryKey(userID))
}

// EventSeen reports whether a webhook delivery id was already processed.
// Without redis every delivery looks new, which is safe because the
// subscription upsert is idempotent.
func EventSeen(ctx context.Context, eventID string) bool {
	if database.Redis == nil || eventID == "" {
		return false
	}
	n, err := database.Redis.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// MarkEventSeen records a delivery id. Callers must only mark after the
// delivery's writes have landed, so a failed delivery stays retryable.
func MarkEventSeen(ctx context.Context, eventID string) {
	if database.Redis == nil || eventID == "" {
		return
	}
	database.Redis.Set(ctx, eventKey(eventID), 1, eventTTL)
}
