package server

import (
	"bytes"
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/langxubai/Sentiment-Compass-app/internal/errors"
)

func (s *Server) handleDashboard(c echo.Context) error {
	if _, err := s.browserSession(c); err != nil {
		return apperrors.InternalError("failed to establish session", err)
	}

	data := map[string]any{
		"WSHost":        c.Request().Host,
		"MaxTextLength": s.config.MaxTextLength,
	}

	var buf bytes.Buffer
	if err := s.dashboardTemplate.Execute(&buf, data); err != nil {
		return apperrors.InternalError("failed to render dashboard", err)
	}

	if err := c.HTML(200, buf.String()); err != nil {
		return fmt.Errorf("failed to send dashboard: %w", err)
	}
	return nil
}
