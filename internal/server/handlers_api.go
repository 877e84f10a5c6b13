package server

import (
	"fmt"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/langxubai/Sentiment-Compass-app/internal/errors"
	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
	"github.com/langxubai/Sentiment-Compass-app/internal/simulation"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type historyResponse struct {
	Samples []sentiment.Sample     `json:"samples"`
	Trend   []sentiment.TrendPoint `json:"trend"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	sessionID, err := s.browserSession(c)
	if err != nil {
		return apperrors.InternalError("failed to establish session", err)
	}

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	length := utf8.RuneCountInString(req.Text)
	if length > s.config.MaxTextLength {
		return apperrors.ValidationError("text exceeds maximum length").
			WithField("length", length).
			WithField("max", s.config.MaxTextLength)
	}

	timer := prometheus.NewTimer(metrics.AnalyzeDuration)
	score := s.analyzer.Score(req.Text)
	timer.ObserveDuration()
	metrics.AnalyzeTextLength.Observe(float64(length))

	sample := sentiment.Sample{
		At:    s.clock.Now().UTC(),
		Text:  req.Text,
		Score: score,
	}

	ctx := c.Request().Context()
	if err := s.history.Append(ctx, sessionID, sample); err != nil {
		metrics.AnalyzeTotal.WithLabelValues(score.Label, "error").Inc()
		return apperrors.InternalError("failed to record sample", err).
			WithField("session_id", sessionID.String())
	}

	s.hub.BroadcastSample(sessionID, sample)
	metrics.AnalyzeTotal.WithLabelValues(score.Label, "ok").Inc()

	if err := c.JSON(200, sample); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleHistory(c echo.Context) error {
	sessionID, err := s.browserSession(c)
	if err != nil {
		return apperrors.InternalError("failed to establish session", err)
	}

	samples, err := s.history.List(c.Request().Context(), sessionID)
	if err != nil {
		return apperrors.InternalError("failed to load history", err).
			WithField("session_id", sessionID.String())
	}

	resp := historyResponse{
		Samples: samples,
		Trend:   sentiment.Trend(samples),
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleClearHistory(c echo.Context) error {
	sessionID, err := s.browserSession(c)
	if err != nil {
		return apperrors.InternalError("failed to establish session", err)
	}

	if err := s.history.Clear(c.Request().Context(), sessionID); err != nil {
		return apperrors.InternalError("failed to clear history", err).
			WithField("session_id", sessionID.String())
	}

	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSimulation(c echo.Context) error {
	generator := simulation.NewGenerator(s.clock.Now().UnixNano())
	samples := generator.Series(s.clock.Now().UTC())

	resp := historyResponse{
		Samples: samples,
		Trend:   sentiment.Trend(samples),
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
