package booking

import (
	"fmt"
	"strings"

	"github.com/deppfellow/valeria-photo/internal/lib/email"
)

// Site holds what the notification needs to know about the studio.
type Site struct {
	Brand       string
	AdminEmail  string
	FromAddress string
}

// Subject returns the notification subject line.
func (s Site) Subject() string {
	return "New Booking Request — " + s.Brand
}

// fallbackFrom is Resend's shared sender, usable before a domain is verified.
const fallbackFrom = "onboarding@resend.dev"

func (s Site) from() string {
	addr := s.FromAddress
	if addr == "" {
		addr = fallbackFrom
	}
	return fmt.Sprintf("%s <%s>", s.Brand, addr)
}

// Compose turns an accepted request into the email sent to the studio.
// Replies go to the visitor.
func Compose(req Request, site Site) (*email.Message, error) {
	rows := []email.Row{
		{Label: "Name", Value: req.Name},
		{Label: "Email", Value: req.Email},
		{Label: "Phone", Value: req.Phone},
		{Label: "Type", Value: req.ShootType},
		{Label: "Date", Value: req.Date},
		{Label: "Message", Value: req.Message},
	}

	var marketing []email.Row
	for _, e := range req.Marketing.Entries() {
		marketing = append(marketing, email.Row{Label: e.Key, Value: e.Value})
	}

	html, err := email.Render(email.TemplateBooking, email.BookingData{
		Brand:     site.Brand,
		Rows:      rows,
		Marketing: marketing,
	})
	if err != nil {
		return nil, err
	}

	return &email.Message{
		To:      site.AdminEmail,
		From:    site.from(),
		Subject: site.Subject(),
		Text:    textBody(rows, marketing),
		HTML:    html,
		ReplyTo: req.Email,
	}, nil
}

// textBody writes one "Label: value" line per row, then a blank line and
// the marketing block when there is one.
func textBody(rows, marketing []email.Row) string {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
	}
	b.WriteString("\n")

	if len(marketing) > 0 {
		b.WriteString("— Marketing —\n")
		for _, r := range marketing {
			fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
		}
	}
	return b.String()
}
