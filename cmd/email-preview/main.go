// Command email-preview renders the booking notification with sample data
// so the template can be checked in a browser or a terminal.
//
//	go run ./cmd/email-preview -format text
//	go run ./cmd/email-preview > /tmp/booking.html
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/config"
	"github.com/deppfellow/valeria-photo/internal/lib/email"
)

func main() {
	format := flag.String("format", "html", "output format: html, text or raw")
	flag.Parse()

	if err := run(*format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(format string) error {
	// raw renders the template straight from the bundled preview data.
	if format == "raw" {
		out, err := email.Render(email.TemplateBooking, email.PreviewData[email.TemplateBooking])
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	defaults := config.Default()
	msg, err := booking.Compose(sampleRequest(), booking.Site{
		Brand:      defaults.Site.Brand,
		AdminEmail: defaults.Site.AdminEmail,
	})
	if err != nil {
		return err
	}

	switch format {
	case "html":
		fmt.Println(msg.HTML)
	case "text":
		fmt.Printf("To: %s\nFrom: %s\nReply-To: %s\nSubject: %s\n\n%s", msg.To, msg.From, msg.ReplyTo, msg.Subject, msg.Text)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func sampleRequest() booking.Request {
	return booking.Request{
		Name:      "Olena Kovalenko",
		Email:     "olena@example.com",
		Phone:     "+380 50 123 4567",
		ShootType: "Wedding",
		Date:      "2026-06-14",
		Message:   "Ceremony at 15:00, about six hours of coverage.",
		Agree:     true,
		Marketing: booking.Attribution{
			Source:   "instagram",
			Campaign: "summer-weddings",
			Referrer: "https://www.instagram.com/",
		},
	}
}
