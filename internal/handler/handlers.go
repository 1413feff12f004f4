package handler

import (
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/deppfellow/valeria-photo/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Page    *PageHandler
	Booking *BookingHandler
	Session *SessionHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Page:    NewPageHandler(s, services.Booking),
		Booking: NewBookingHandler(s, services.Booking),
		Session: NewSessionHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
