package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager issues the session cookie and resolves requests to sessions.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

type ManagerConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func NewManager(store Store, cfg ManagerConfig) *Manager {
	return &Manager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// Resolve returns the session for r. When the request carries no usable
// session cookie a new id is generated and the cookie is set on w.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(m.cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return New(id.String(), m.store, m.ttl)
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, m.cookie(id))
	return New(id, m.store, m.ttl)
}

func (m *Manager) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
