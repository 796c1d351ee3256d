package middleware

import (
	"FacultyManager/internal/config"
	"FacultyManager/internal/session"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionContextKey is where the parsed *session.Claims are stored on the
// echo context.
const SessionContextKey = "session"

// SessionMiddleware parses the session cookie when present. Missing or invalid
// tokens are ignored here; the AuthGate decides what anonymous callers may do.
func SessionMiddleware(sessions *session.Manager) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  SessionContextKey,
		TokenLookup: "cookie:" + config.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return sessions.Parse(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}
