package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
)

type memorySession struct {
	samples    []sentiment.Sample
	lastAccess time.Time
}

// MemoryStore is the default single-instance history store.
// Sessions idle longer than the TTL are pruned periodically.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*memorySession
	limit    int
	ttl      time.Duration
	clock    clockwork.Clock
}

func NewMemoryStore(limit int, ttl time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*memorySession),
		limit:    limit,
		ttl:      ttl,
		clock:    clock,
	}
}

func (s *MemoryStore) Append(_ context.Context, sessionID uuid.UUID, sample sentiment.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = &memorySession{}
		s.sessions[sessionID] = session
		metrics.HistorySessions.Set(float64(len(s.sessions)))
	}

	session.samples = append(session.samples, sample)
	if len(session.samples) > s.limit {
		// drop oldest; copy to keep the backing array from pinning evicted samples
		session.samples = append(session.samples[:0:0], session.samples[len(session.samples)-s.limit:]...)
	}
	session.lastAccess = s.clock.Now()

	metrics.HistoryOpsTotal.WithLabelValues("append", "ok").Inc()
	return nil
}

func (s *MemoryStore) List(_ context.Context, sessionID uuid.UUID) ([]sentiment.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return []sentiment.Sample{}, nil
	}

	out := make([]sentiment.Sample, len(session.samples))
	copy(out, session.samples)

	metrics.HistoryOpsTotal.WithLabelValues("list", "ok").Inc()
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	metrics.HistorySessions.Set(float64(len(s.sessions)))
	metrics.HistoryOpsTotal.WithLabelValues("clear", "ok").Inc()
	return nil
}

// PruneIdle removes sessions idle longer than the TTL and returns the count.
func (s *MemoryStore) PruneIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	pruned := 0
	for id, session := range s.sessions {
		if now.Sub(session.lastAccess) > s.ttl {
			delete(s.sessions, id)
			pruned++
		}
	}

	if pruned > 0 {
		metrics.HistorySessionsPruned.Add(float64(pruned))
		metrics.HistorySessions.Set(float64(len(s.sessions)))
	}
	return pruned
}

// Size returns the number of sessions currently held.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartPruneTimer starts a background goroutine that periodically prunes
// idle sessions. Returns a stop function to clean up the goroutine.
func (s *MemoryStore) StartPruneTimer(interval time.Duration) func() {
	ticker := s.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if pruned := s.PruneIdle(); pruned > 0 {
					slog.Debug("Pruned idle history sessions", "count", pruned)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
