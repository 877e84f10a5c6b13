// Package history keeps the ephemeral per-session record of scored samples.
//
// The in-memory implementation serves single-instance deployments; the Redis
// implementation lets multiple instances share session history. Both are
// bounded by a sample limit and a TTL, so nothing outlives its session.
package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
)

// Store abstracts per-session sample history.
type Store interface {
	// Append records a sample for the session, evicting the oldest sample
	// once the capacity limit is reached.
	Append(ctx context.Context, sessionID uuid.UUID, sample sentiment.Sample) error
	// List returns the session's samples in insertion order, oldest first.
	// A session with no history yields an empty slice, not an error.
	List(ctx context.Context, sessionID uuid.UUID) ([]sentiment.Sample, error)
	// Clear removes all samples for the session.
	Clear(ctx context.Context, sessionID uuid.UUID) error
}
