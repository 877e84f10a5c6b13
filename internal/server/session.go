package server

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "compass_session"
	sessionIDKey      = "id"
)

// browserSession returns the caller's session UUID, minting and persisting
// a fresh one in the cookie on first contact.
func (s *Server) browserSession(c echo.Context) (uuid.UUID, error) {
	session, err := s.sessionStore.Get(c.Request(), sessionCookieName)
	if err != nil {
		// a tampered or stale cookie falls through to a fresh session
		session, _ = s.sessionStore.New(c.Request(), sessionCookieName)
	}

	if raw, ok := session.Values[sessionIDKey].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id, nil
		}
	}

	id := uuid.New()
	session.Values[sessionIDKey] = id.String()
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save session cookie: %w", err)
	}
	return id, nil
}
