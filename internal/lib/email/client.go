// Package email delivers booking notifications.
//
// Sender is the delivery capability. ResendSender talks to the Resend API,
// LogSender only logs metadata for local runs. HTML bodies are rendered from
// templates embedded in the binary.
package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/valeria-photo/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Message is a fully composed email.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Sender delivers a message. A nil error means the provider accepted it.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ResendSender sends through the Resend API.
type ResendSender struct {
	client *resend.Client
	logger *zerolog.Logger
}

// NewResendSender creates a sender using the configured API key.
func NewResendSender(cfg *config.EmailConfig, logger *zerolog.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		logger: logger,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	s.logger.Debug().
		Str("provider", config.ProviderResend).
		Str("message_id", sent.Id).
		Msg("email accepted")

	return nil
}

// LogSender accepts every message and logs what would have been sent.
// Bodies and addresses are left out of the log.
type LogSender struct {
	logger *zerolog.Logger
}

func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info().
		Str("provider", config.ProviderLog).
		Str("subject", msg.Subject).
		Int("text_bytes", len(msg.Text)).
		Int("html_bytes", len(msg.HTML)).
		Bool("reply_to", msg.ReplyTo != "").
		Msg("email not sent, log provider active")

	return nil
}

// NewSender returns the sender selected by cfg.Provider.
func NewSender(cfg *config.EmailConfig, logger *zerolog.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.ProviderResend:
		return NewResendSender(cfg, logger), nil
	case config.ProviderLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
