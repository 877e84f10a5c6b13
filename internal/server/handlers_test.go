package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/langxubai/Sentiment-Compass-app/internal/config"
	"github.com/langxubai/Sentiment-Compass-app/internal/history"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
	"github.com/langxubai/Sentiment-Compass-app/internal/websocket"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                  "test",
		Host:                    "127.0.0.1",
		Port:                    "0",
		SessionSecret:           "test-session-secret",
		MaxTextLength:           5000,
		HistoryLimit:            500,
		MaxWebSocketConnections: 100,
		HistoryTTL:              24 * time.Hour,
		SessionMaxAge:           168 * time.Hour,
	}
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	analyzer, err := sentiment.NewAnalyzer()
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	store := history.NewMemoryStore(cfg.HistoryLimit, cfg.HistoryTTL, clock)

	hub := websocket.NewHub(cfg.MaxWebSocketConnections)
	t.Cleanup(hub.Stop)

	srv, err := NewServer(cfg, analyzer, store, hub, clock, nil)
	require.NoError(t, err)
	return srv
}

// doRequest runs a request through the full router, carrying any cookies
// from a previous response so tests can act as one browser session.
func doRequest(t *testing.T, srv *Server, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}
