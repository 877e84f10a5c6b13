// Package server wires the HTTP surface of the dashboard: page rendering,
// the scoring API, live updates, and the observability endpoints.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/langxubai/Sentiment-Compass-app/internal/config"
	"github.com/langxubai/Sentiment-Compass-app/internal/history"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
	"github.com/langxubai/Sentiment-Compass-app/internal/websocket"
	"github.com/langxubai/Sentiment-Compass-app/web"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config

	analyzer *sentiment.Analyzer
	history  history.Store
	hub      *websocket.Hub
	clock    clockwork.Clock

	sessionStore      *sessions.CookieStore
	dashboardTemplate *template.Template

	// nil when the deployment runs without Redis
	redisClient *goredis.Client

	startTime time.Time
}

func NewServer(cfg *config.Config, analyzer *sentiment.Analyzer, historyStore history.Store, hub *websocket.Hub, clock clockwork.Clock, redisClient *goredis.Client) (*Server, error) {
	dashboardTmpl, err := template.ParseFS(web.TemplateFiles, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:              e,
		config:            cfg,
		analyzer:          analyzer,
		history:           historyStore,
		hub:               hub,
		clock:             clock,
		sessionStore:      sessionStore,
		dashboardTemplate: dashboardTmpl,
		redisClient:       redisClient,
		startTime:         clock.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(net.JoinHostPort(s.config.Host, s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
