package server

import (
	"errors"
	"fmt"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apperrors "github.com/langxubai/Sentiment-Compass-app/internal/errors"
	"github.com/langxubai/Sentiment-Compass-app/internal/logging"
	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	"github.com/langxubai/Sentiment-Compass-app/internal/websocket"
)

// Default CheckOrigin applies: cross-origin upgrades are refused.
var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Clients never send application data; the read pump only exists to detect
// disconnects, so anything beyond control-frame size closes the connection.
const maxInboundFrameSize = 512

func (s *Server) handleWebSocket(c echo.Context) error {
	sessionID, err := s.browserSession(c)
	if err != nil {
		return apperrors.InternalError("failed to establish session", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upgrade websocket: %w", err)
	}

	log := logging.WithSession(sessionID.String())
	if err := s.hub.Register(sessionID, conn); err != nil {
		if !errors.Is(err, websocket.ErrConnectionLimit) {
			log.Error("Failed to register websocket client", "error", err)
		}
		return nil // hub closed the connection already
	}
	log.Debug("Websocket client connected")

	// Read pump blocks until the connection closes.
	conn.SetReadLimit(maxInboundFrameSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(sessionID, conn)

	return nil
}
