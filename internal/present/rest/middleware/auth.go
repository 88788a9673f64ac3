package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/session"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/present/rest/presenter"
)

var tracer = otel.Tracer("auth")

// SessionMiddleware gates mutating routes on the mu-session-id header. The
// identification proxy puts the session URI in that header; a session only
// counts when the store binds it to an account.
type SessionMiddleware struct {
	checker *session.Checker
}

func NewSessionMiddleware(checker *session.Checker) *SessionMiddleware {
	return &SessionMiddleware{checker: checker}
}

func (s *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.SessionMiddleware.RequireSession")
		defer span.End()

		sessionURI := c.Request().Header.Get("mu-session-id")
		if sessionURI == "" {
			return presenter.Unauthorized(c, "request carries no mu-session-id header")
		}

		loggedIn, err := s.checker.IsLoggedIn(ctx, sessionURI)
		if err != nil {
			span.RecordError(err)
			return presenter.InternalError(c, err)
		}
		if !loggedIn {
			return presenter.Unauthorized(c, "session is not bound to an account")
		}

		span.SetAttributes(attribute.String("SessionId", sessionURI))
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
