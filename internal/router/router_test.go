package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/valeria-photo/internal/booking"
	"github.com/deppfellow/valeria-photo/internal/config"
	"github.com/deppfellow/valeria-photo/internal/errs"
	"github.com/deppfellow/valeria-photo/internal/handler"
	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/deppfellow/valeria-photo/internal/service"
	"github.com/deppfellow/valeria-photo/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*email.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestRouter(t *testing.T, sender *fakeSender) *echo.Echo {
	t.Helper()

	cfg := config.Default()
	logger := zerolog.Nop()

	s := &server.Server{
		Config: cfg,
		Logger: &logger,
		Sessions: session.NewManager(session.NewMemoryStore(), session.ManagerConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
		}),
		Mailer: sender,
	}

	services := &service.Services{
		Booking: service.NewBookingService(sender, booking.Site{
			Brand:      cfg.Site.Brand,
			AdminEmail: cfg.Site.AdminEmail,
		}, time.Second, &logger),
	}

	return NewRouter(s, handler.NewHandlers(s, services))
}

var tokenPattern = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]*)"`)

func extractToken(t *testing.T, body string) string {
	t.Helper()
	m := tokenPattern.FindStringSubmatch(body)
	require.NotNil(t, m, "csrf_token input not found")
	return m[1]
}

// visit loads the page and returns the session cookie and token.
func visit(t *testing.T, e *echo.Echo, target string) (*http.Cookie, string, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Referer", "https://www.google.com/")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	body := rec.Body.String()
	return cookies[0], extractToken(t, body), body
}

func postForm(e *echo.Echo, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPage_RendersForm(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})

	cookie, token, body := visit(t, e, "/?utm_source=instagram&utm_campaign=%3Cb%3Espring%3C%2Fb%3E")

	assert.Equal(t, "portfolio_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Len(t, token, 64)
	assert.Contains(t, body, `name="utm_source" value="instagram"`)
	assert.Contains(t, body, `name="utm_campaign" value="spring"`)
	assert.Contains(t, body, `name="referrer" value="https://www.google.com/"`)
	assert.Contains(t, body, `<link rel="canonical" href="http://example.com/">`)
	assert.Contains(t, body, `name="company"`)
}

func TestPage_TokenStableAcrossVisits(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})
	cookie, token, _ := visit(t, e, "/")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, token, extractToken(t, rec.Body.String()))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPage_SubmitBooking(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)
	cookie, token, _ := visit(t, e, "/?utm_source=instagram")

	rec := postForm(e, cookie, url.Values{
		"form_name":  {"booking"},
		"csrf_token": {token},
		"name":       {"Olena"},
		"email":      {"olena@example.com"},
		"agree":      {"on"},
		"utm_source": {"instagram"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Your request has been sent")

	require.Equal(t, 1, sender.count())
	msg := sender.sent[0]
	assert.Equal(t, "olena@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Text, "— Marketing —\nutm_source: instagram\n")

	next := extractToken(t, body)
	assert.NotEqual(t, token, next)

	// The consumed token no longer works.
	rec = postForm(e, cookie, url.Values{
		"form_name":  {"booking"},
		"csrf_token": {token},
		"name":       {"Olena"},
		"email":      {"olena@example.com"},
		"agree":      {"on"},
	})
	assert.Contains(t, rec.Body.String(), "Invalid session token.")
	assert.Equal(t, 1, sender.count())
}

func TestPage_SubmitShowsFailuresInOrder(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)
	cookie, token, _ := visit(t, e, "/")

	rec := postForm(e, cookie, url.Values{
		"form_name":  {"booking"},
		"csrf_token": {token},
		"email":      {"bad"},
		"message":    {"keep me"},
	})

	body := rec.Body.String()
	name := strings.Index(body, "Please enter your name.")
	mail := strings.Index(body, "Please enter a valid email address.")
	policy := strings.Index(body, "Please accept the policy.")

	require.True(t, name > 0 && mail > 0 && policy > 0)
	assert.Less(t, name, mail)
	assert.Less(t, mail, policy)
	assert.Contains(t, body, ">keep me</textarea>")
	assert.Equal(t, token, extractToken(t, body))
	assert.Zero(t, sender.count())
}

func TestPage_Honeypot(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)
	cookie, token, _ := visit(t, e, "/")

	rec := postForm(e, cookie, url.Values{
		"form_name":  {"booking"},
		"csrf_token": {token},
		"name":       {"Bot"},
		"email":      {"bot@example.com"},
		"agree":      {"1"},
		"company":    {"Acme"},
	})

	assert.Contains(t, rec.Body.String(), "Spam detected.")
	assert.Zero(t, sender.count())
}

func TestPage_OtherPostRendersPage(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)

	rec := postForm(e, nil, url.Values{"form_name": {"newsletter"}, "email": {"x@example.com"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `role="alert"`)
	assert.Zero(t, sender.count())
}

func TestPage_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	e := newTestRouter(t, sender)
	cookie, token, _ := visit(t, e, "/")

	rec := postForm(e, cookie, url.Values{
		"form_name":  {"booking"},
		"csrf_token": {token},
		"name":       {"Olena"},
		"email":      {"olena@example.com"},
		"agree":      {"on"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, "Sending failed. Please try later.")
	assert.Equal(t, token, extractToken(t, body))
}

func apiToken(t *testing.T, e *echo.Echo) (*http.Cookie, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session/token", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], resp.CSRFToken
}

func postJSON(e *echo.Echo, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPI_CreateBooking(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)
	cookie, token := apiToken(t, e)

	rec := postJSON(e, cookie, `{"name":"Olena","email":"olena@example.com","agree":true,"csrf_token":"`+token+`"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp handler.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sent", resp.Status)
	assert.NotEqual(t, token, resp.CSRFToken)
	assert.Equal(t, 1, sender.count())
}

func TestAPI_CreateBookingInvalid(t *testing.T) {
	sender := &fakeSender{}
	e := newTestRouter(t, sender)
	cookie, token := apiToken(t, e)

	rec := postJSON(e, cookie, `{"email":"bad","csrf_token":"`+token+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BOOKING_INVALID", resp.Code)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "Please enter your name."},
		{Field: "email", Error: "Please enter a valid email address."},
		{Field: "agree", Error: "Please accept the policy."},
	}, resp.Errors)
	assert.Nil(t, resp.Action)
	assert.Zero(t, sender.count())
}

func TestAPI_CreateBookingCSRF(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})
	cookie, _ := apiToken(t, e)

	rec := postJSON(e, cookie, `{"name":"Olena","email":"olena@example.com","agree":true,"csrf_token":"forged"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid session token.", resp.Message)
	require.NotNil(t, resp.Action)
	assert.Equal(t, errs.ActionTypeRefreshToken, resp.Action.Type)
}

func TestAPI_CreateBookingDeliveryFailed(t *testing.T) {
	e := newTestRouter(t, &fakeSender{err: errors.New("provider down")})
	cookie, token := apiToken(t, e)

	rec := postJSON(e, cookie, `{"name":"Olena","email":"olena@example.com","agree":true,"csrf_token":"`+token+`"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DELIVERY_FAILED", resp.Code)
	assert.Equal(t, "Sending failed. Please try later.", resp.Message)
}

func TestAPI_OversizedField(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})
	cookie, token := apiToken(t, e)

	rec := postJSON(e, cookie, `{"name":"`+strings.Repeat("x", 201)+`","csrf_token":"`+token+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BAD_REQUEST", resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "name", resp.Errors[0].Field)
}

func TestStatus(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t, &fakeSender{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}
