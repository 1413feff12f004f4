package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

// Template names an HTML email template under templates/emails.
type Template string

const (
	// TemplateBooking corresponds to templates/emails/booking.html
	TemplateBooking Template = "booking"
)

//go:embed templates/emails/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/emails/*.html"))

// Row is one label/value line of a notification.
type Row struct {
	Label string
	Value string
}

// BookingData feeds TemplateBooking.
type BookingData struct {
	Brand     string
	Rows      []Row
	Marketing []Row
}

// Render executes the named template with data.
func Render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
