package handler

import (
	"github.com/deppfellow/valeria-photo/internal/middleware"
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TokenRequest has no fields; the session comes from the cookie.
type TokenRequest struct{}

func (r *TokenRequest) Validate() error { return nil }

type TokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// SessionHandler hands the session CSRF token to script clients.
type SessionHandler struct {
	Handler
}

func NewSessionHandler(s *server.Server) *SessionHandler {
	return &SessionHandler{Handler: NewHandler(s)}
}

func NewTokenRequest() *TokenRequest {
	return &TokenRequest{}
}

func (h *SessionHandler) GetToken(c echo.Context, _ *TokenRequest) (*TokenResponse, error) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return nil, errors.New("session middleware not installed")
	}

	token, err := sess.GetOrCreateToken(c.Request().Context())
	if err != nil {
		return nil, errors.Wrap(err, "session token unavailable")
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return &TokenResponse{CSRFToken: token}, nil
}
