package middleware

import (
	"github.com/deppfellow/valeria-photo/internal/session"
	"github.com/labstack/echo/v4"
)

// SessionKey is the echo context key of the visitor session.
const SessionKey = "session"

// SessionMiddleware attaches the visitor session, issuing the cookie on
// the first visit.
type SessionMiddleware struct {
	manager *session.Manager
}

func NewSessionMiddleware(manager *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{manager: manager}
}

func (sm *SessionMiddleware) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sm.manager.Resolve(c.Response(), c.Request())
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// GetSession returns the session attached by Attach, nil if none.
func GetSession(c echo.Context) *session.Session {
	sess, _ := c.Get(SessionKey).(*session.Session)
	return sess
}
