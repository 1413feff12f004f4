package handler

import (
	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/errs"
	"github.com/deppfellow/valeria-photo/internal/middleware"
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/deppfellow/valeria-photo/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	codeBookingInvalid = "BOOKING_INVALID"
	codeDeliveryFailed = "DELIVERY_FAILED"

	sessionTokenPath = "/api/v1/session/token"
)

// BookingResponse is returned once the studio has been notified.
type BookingResponse struct {
	Status string `json:"status"`
	// CSRFToken must be sent with the next submission.
	CSRFToken string `json:"csrf_token"`
}

// BookingHandler serves the JSON booking API.
type BookingHandler struct {
	Handler
	bookings *service.BookingService
}

func NewBookingHandler(s *server.Server, bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{
		Handler:  NewHandler(s),
		bookings: bookings,
	}
}

func NewSubmission() *booking.Submission {
	return &booking.Submission{}
}

// CreateBooking runs one submission for the caller's session.
func (h *BookingHandler) CreateBooking(c echo.Context, req *booking.Submission) (*BookingResponse, error) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return nil, errors.New("session middleware not installed")
	}

	out, err := h.bookings.Submit(c.Request().Context(), sess, *req)
	if err != nil {
		return nil, errors.Wrap(err, "booking session unavailable")
	}

	if len(out.Failures) > 0 {
		return nil, bookingError(out.Failures)
	}

	return &BookingResponse{Status: "sent", CSRFToken: out.Token}, nil
}

// bookingError maps failures onto the API error shape: delivery problems
// are 503, everything else a 400 listing each failure in order.
func bookingError(failures booking.Failures) error {
	code := codeDeliveryFailed
	if failures.Has(booking.DeliveryFailed) {
		return errs.NewServiceUnavailableError(booking.DeliveryFailed.Message(), true, &code, nil)
	}

	fieldErrors := make([]errs.FieldError, 0, len(failures))
	for _, k := range failures {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: k.Field(), Error: k.Message()})
	}

	code = codeBookingInvalid
	httpErr := errs.NewBadRequestError(failures.Messages()[0], true, &code, fieldErrors, nil)
	if failures.Has(booking.CsrfMismatch) {
		httpErr = httpErr.WithAction(&errs.Action{
			Type:    errs.ActionTypeRefreshToken,
			Message: "Fetch a fresh session token and resubmit.",
			Value:   sessionTokenPath,
		})
	}
	return httpErr
}
