package service

import (
	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/lib/job"
	"github.com/deppfellow/valeria-photo/internal/server"
)

type Services struct {
	Booking *BookingService
	Job     *job.JobService
}

func NewService(s *server.Server) (*Services, error) {
	site := booking.Site{
		Brand:       s.Config.Site.Brand,
		AdminEmail:  s.Config.Site.AdminEmail,
		FromAddress: s.Config.Email.FromAddress,
	}

	return &Services{
		Booking: NewBookingService(s.Mailer, site, s.Config.Email.SendTimeout, s.Logger),
		Job:     s.Job,
	}, nil
}
