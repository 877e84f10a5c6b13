package history

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"

	redisclient "github.com/langxubai/Sentiment-Compass-app/internal/redis"
)

var (
	testRedisURL string
	redContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	redContainer, err = redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	defer func() {
		if err := redContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
		}
	}()
	os.Exit(m.Run())
}

func setupTestRedisStore(t *testing.T, limit int, ttl time.Duration) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client, err := redisclient.NewClient(ctx, testRedisURL)
	require.NoError(t, err)

	require.NoError(t, client.FlushAll(ctx).Err())

	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewRedisStore(client, limit, ttl)
}

func TestRedisStore_AppendAndList(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)
	ctx := context.Background()
	sessionID := uuid.New()

	require.NoError(t, store.Append(ctx, sessionID, sampleWithPolarity(0.4)))
	require.NoError(t, store.Append(ctx, sessionID, sampleWithPolarity(-0.4)))

	samples, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 0.4, samples[0].Score.Polarity)
	assert.Equal(t, -0.4, samples[1].Score.Polarity)
}

func TestRedisStore_UnknownSessionIsEmpty(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)

	samples, err := store.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRedisStore_CapacityEvictsOldest(t *testing.T) {
	store := setupTestRedisStore(t, 3, time.Hour)
	ctx := context.Background()
	sessionID := uuid.New()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Append(ctx, sessionID, sampleWithPolarity(float64(i)/10)))
	}

	samples, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 0.3, samples[0].Score.Polarity)
	assert.Equal(t, 0.5, samples[2].Score.Polarity)
}

func TestRedisStore_Clear(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)
	ctx := context.Background()
	sessionID := uuid.New()

	require.NoError(t, store.Append(ctx, sessionID, sampleWithPolarity(0.5)))
	require.NoError(t, store.Clear(ctx, sessionID))

	samples, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRedisStore_SessionsAreIsolated(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, store.Append(ctx, first, sampleWithPolarity(0.7)))

	samples, err := store.List(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRedisStore_KeyCarriesTTL(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)
	ctx := context.Background()
	sessionID := uuid.New()

	require.NoError(t, store.Append(ctx, sessionID, sampleWithPolarity(0.5)))

	ttl, err := store.rdb.TTL(ctx, historyKey(sessionID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRedisStore_RoundTripPreservesSample(t *testing.T) {
	store := setupTestRedisStore(t, 10, time.Hour)
	ctx := context.Background()
	sessionID := uuid.New()

	in := sampleWithPolarity(0.42)
	in.Text = "markets are cautiously optimistic"
	in.Score.Subjectivity = 0.6
	in.Score.Label = "positive"
	require.NoError(t, store.Append(ctx, sessionID, in))

	samples, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, in.Text, samples[0].Text)
	assert.Equal(t, in.Score, samples[0].Score)
	assert.True(t, in.At.Equal(samples[0].At))
}
