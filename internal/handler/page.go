package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/middleware"
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/deppfellow/valeria-photo/internal/service"
	"github.com/labstack/echo/v4"
)

const pageTemplate = "page.html"

var shootTypes = []string{"Wedding", "Love story", "Portrait", "Family", "Content"}

// PageHandler serves the portfolio page and its booking form.
type PageHandler struct {
	Handler
	bookings *service.BookingService
}

func NewPageHandler(s *server.Server, bookings *service.BookingService) *PageHandler {
	return &PageHandler{
		Handler:  NewHandler(s),
		bookings: bookings,
	}
}

// pageView is everything page.html needs.
type pageView struct {
	Brand     string
	City      string
	Canonical string
	Year      int

	ShootTypes []string

	CSRFToken string
	Form      booking.Submission
	Sent      bool
	Errors    []string
}

// Show renders the page. Campaign parameters come from the query string
// and the referrer from the Referer header; both ride along in hidden
// fields until the form is posted.
func (h *PageHandler) Show(c echo.Context) error {
	q := c.QueryParams()
	form := booking.Submission{
		UTMSource:   booking.Sanitize(q.Get("utm_source")),
		UTMMedium:   booking.Sanitize(q.Get("utm_medium")),
		UTMCampaign: booking.Sanitize(q.Get("utm_campaign")),
		UTMContent:  booking.Sanitize(q.Get("utm_content")),
		UTMTerm:     booking.Sanitize(q.Get("utm_term")),
		Referrer:    booking.Sanitize(c.Request().Referer()),
	}

	view := h.newView(c, form)
	if sess := middleware.GetSession(c); sess != nil {
		token, err := sess.GetOrCreateToken(c.Request().Context())
		if err != nil {
			// The form still renders; a submission without a token is
			// rejected as a CSRF mismatch.
			middleware.GetLogger(c).Error().Err(err).Msg("failed to load session token")
		}
		view.CSRFToken = token
	}

	return h.render(c, view)
}

// Submit handles POST /. Only form_name=booking runs the booking flow;
// any other post just renders the page.
func (h *PageHandler) Submit(c echo.Context) error {
	var sub booking.Submission
	if err := c.Bind(&sub); err != nil || !sub.IsBooking() {
		return h.Show(c)
	}

	logger := middleware.GetLogger(c)
	view := h.newView(c, sub)
	view.Form.CSRFToken = ""
	view.Form.Company = ""

	sess := middleware.GetSession(c)
	if sess == nil {
		view.Errors = []string{booking.CsrfMismatch.Message()}
		return h.render(c, view)
	}

	out, err := h.bookings.Submit(c.Request().Context(), sess, sub)
	if err != nil {
		// Fail closed: without the stored token the submission cannot be
		// trusted.
		logger.Error().Err(err).Msg("session store unavailable during booking")
		view.Errors = []string{booking.CsrfMismatch.Message()}
		return h.render(c, view)
	}

	view.CSRFToken = out.Token
	if out.Delivered() {
		view.Sent = true
		// Keep attribution for a follow-up request, clear the rest.
		view.Form = booking.Submission{
			UTMSource:   out.Request.Marketing.Source,
			UTMMedium:   out.Request.Marketing.Medium,
			UTMCampaign: out.Request.Marketing.Campaign,
			UTMContent:  out.Request.Marketing.Content,
			UTMTerm:     out.Request.Marketing.Term,
			Referrer:    out.Request.Marketing.Referrer,
		}
		return h.render(c, view)
	}

	view.Errors = out.Failures.Messages()
	return h.render(c, view)
}

func (h *PageHandler) newView(c echo.Context, form booking.Submission) pageView {
	site := h.server.Config.Site
	return pageView{
		Brand:      site.Brand,
		City:       site.City,
		Canonical:  canonicalURL(c, site.PublicURL),
		Year:       time.Now().Year(),
		ShootTypes: shootTypes,
		Form:       form,
	}
}

func (h *PageHandler) render(c echo.Context, view pageView) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Render(http.StatusOK, pageTemplate, view)
}

// canonicalURL prefers the configured public URL and falls back to the
// request's own origin.
func canonicalURL(c echo.Context, publicURL string) string {
	if publicURL != "" {
		return strings.TrimRight(publicURL, "/") + "/"
	}
	return c.Scheme() + "://" + c.Request().Host + "/"
}
