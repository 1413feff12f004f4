// Package booking decides whether a booking form submission may be turned
// into a notification for the studio.
//
// Validate is pure: it reads the submission and the token stored for the
// visitor's session and returns either a sanitized Request or the ordered
// list of reasons the submission was rejected.
package booking

import (
	"crypto/subtle"

	"github.com/deppfellow/valeria-photo/internal/validation"
)

// Validate runs every check and collects all failures in this order:
// CSRF, honeypot, name, email, policy. It never stops at the first one.
//
// expectedToken is the token bound to the visitor's session. An empty
// expected token never matches.
func Validate(sub Submission, expectedToken string) (*Request, Failures) {
	var failures Failures

	if !TokensMatch(sub.CSRFToken, expectedToken) {
		failures = append(failures, CsrfMismatch)
	}

	if sub.Company != "" {
		failures = append(failures, SpamDetected)
	}

	req := sanitized(sub)

	if req.Name == "" {
		failures = append(failures, MissingName)
	}
	if !validation.IsValidEmail(req.Email) {
		failures = append(failures, InvalidEmail)
	}
	if !req.Agree {
		failures = append(failures, PolicyNotAccepted)
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return &req, nil
}

// TokensMatch compares a submitted token against the session token in
// constant time.
func TokensMatch(submitted, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

func sanitized(sub Submission) Request {
	return Request{
		Name:      Sanitize(sub.Name),
		Email:     Sanitize(sub.Email),
		Phone:     Sanitize(sub.Phone),
		ShootType: Sanitize(sub.ShootType),
		Date:      Sanitize(sub.Date),
		Message:   Sanitize(sub.Message),
		Agree:     bool(sub.Agree),
		Marketing: Attribution{
			Source:   Sanitize(sub.UTMSource),
			Medium:   Sanitize(sub.UTMMedium),
			Campaign: Sanitize(sub.UTMCampaign),
			Content:  Sanitize(sub.UTMContent),
			Term:     Sanitize(sub.UTMTerm),
			Referrer: Sanitize(sub.Referrer),
		},
	}
}
