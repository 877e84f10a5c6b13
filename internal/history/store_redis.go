package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
)

// RedisStore shares session history across instances. Samples live in a
// capped list per session; the key TTL is refreshed on every append so
// history expires with the session, not with the deployment.
type RedisStore struct {
	rdb   *goredis.Client
	limit int
	ttl   time.Duration
}

func NewRedisStore(rdb *goredis.Client, limit int, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, limit: limit, ttl: ttl}
}

func historyKey(sessionID uuid.UUID) string {
	return "compass:history:" + sessionID.String()
}

func (s *RedisStore) Append(ctx context.Context, sessionID uuid.UUID, sample sentiment.Sample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	key := historyKey(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.limit), -1)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("append", "error").Inc()
		return fmt.Errorf("failed to append sample: %w", err)
	}

	metrics.HistoryOpsTotal.WithLabelValues("append", "ok").Inc()
	return nil
}

func (s *RedisStore) List(ctx context.Context, sessionID uuid.UUID) ([]sentiment.Sample, error) {
	raw, err := s.rdb.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}

	samples := make([]sentiment.Sample, 0, len(raw))
	for _, item := range raw {
		var sample sentiment.Sample
		if err := json.Unmarshal([]byte(item), &sample); err != nil {
			// skip corrupt entries instead of failing the whole read
			continue
		}
		samples = append(samples, sample)
	}

	metrics.HistoryOpsTotal.WithLabelValues("list", "ok").Inc()
	return samples, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.rdb.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		metrics.HistoryOpsTotal.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("failed to clear history: %w", err)
	}

	metrics.HistoryOpsTotal.WithLabelValues("clear", "ok").Inc()
	return nil
}
