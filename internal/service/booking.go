package service

import (
	"context"
	"time"

	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// TokenStore is the per-visitor CSRF token holder.
type TokenStore interface {
	GetOrCreateToken(ctx context.Context) (string, error)
	RotateToken(ctx context.Context) (string, error)
}

// Outcome is the result of one submission.
type Outcome struct {
	// Request is set only when the notification was delivered.
	Request  *booking.Request
	Failures booking.Failures
	// Token is the CSRF token the next form render must carry.
	Token string
}

// Delivered reports whether the studio was notified.
func (o Outcome) Delivered() bool {
	return o.Request != nil && len(o.Failures) == 0
}

type BookingService struct {
	sender      email.Sender
	site        booking.Site
	sendTimeout time.Duration
	logger      *zerolog.Logger
}

func NewBookingService(sender email.Sender, site booking.Site, sendTimeout time.Duration, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		sender:      sender,
		site:        site,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Submit validates sub against the visitor's token and, when it passes,
// sends the notification. The token is rotated only after a successful
// send.
//
// The error return is reserved for token store failures; every booking
// problem, delivery included, is reported through Outcome.Failures.
func (s *BookingService) Submit(ctx context.Context, tokens TokenStore, sub booking.Submission) (Outcome, error) {
	txn := newrelic.FromContext(ctx)
	log := s.logger.With().Str("operation", "booking_submit").Logger()

	expected, err := tokens.GetOrCreateToken(ctx)
	if err != nil {
		return Outcome{}, err
	}

	req, failures := booking.Validate(sub, expected)
	if len(failures) > 0 {
		txn.AddAttribute("booking.outcome", "rejected")
		log.Info().Strs("failures", failures.Strings()).Msg("booking rejected")
		return Outcome{Failures: failures, Token: expected}, nil
	}

	if err := s.deliver(ctx, txn, *req); err != nil {
		txn.AddAttribute("booking.outcome", "delivery_failed")
		txn.NoticeError(err)
		log.Error().Err(err).Msg("booking notification failed")
		return Outcome{Failures: booking.Failures{booking.DeliveryFailed}, Token: expected}, nil
	}

	txn.AddAttribute("booking.outcome", "sent")
	log.Info().
		Bool("has_marketing", !req.Marketing.IsZero()).
		Msg("booking sent")

	next, err := tokens.RotateToken(ctx)
	if err != nil {
		// The studio already has the request; keep the old token.
		log.Error().Err(err).Msg("failed to rotate session token")
		next = expected
	}

	return Outcome{Request: req, Token: next}, nil
}

func (s *BookingService) deliver(ctx context.Context, txn *newrelic.Transaction, req booking.Request) error {
	defer txn.StartSegment("booking.deliver").End()

	msg, err := booking.Compose(req, s.site)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	return s.sender.Send(sendCtx, msg)
}
