package booking

import "strings"

// FailureKind enumerates every reason a booking can be turned down.
// The numeric order is the display order.
type FailureKind int

const (
	CsrfMismatch FailureKind = iota + 1
	SpamDetected
	MissingName
	InvalidEmail
	PolicyNotAccepted
	DeliveryFailed
)

var failureMessages = map[FailureKind]string{
	CsrfMismatch:      "Invalid session token.",
	SpamDetected:      "Spam detected.",
	MissingName:       "Please enter your name.",
	InvalidEmail:      "Please enter a valid email address.",
	PolicyNotAccepted: "Please accept the policy.",
	DeliveryFailed:    "Sending failed. Please try later.",
}

var failureCodes = map[FailureKind]string{
	CsrfMismatch:      "csrf_mismatch",
	SpamDetected:      "spam_detected",
	MissingName:       "missing_name",
	InvalidEmail:      "invalid_email",
	PolicyNotAccepted: "policy_not_accepted",
	DeliveryFailed:    "delivery_failed",
}

// failureFields names the submitted field each failure points at.
var failureFields = map[FailureKind]string{
	CsrfMismatch:      "csrf_token",
	SpamDetected:      "company",
	MissingName:       "name",
	InvalidEmail:      "email",
	PolicyNotAccepted: "agree",
}

// Message is the text shown next to the form.
func (k FailureKind) Message() string {
	return failureMessages[k]
}

// String returns a stable snake_case identifier, used in logs.
func (k FailureKind) String() string {
	if code, ok := failureCodes[k]; ok {
		return code
	}
	return "unknown"
}

// Field returns the form field the failure relates to, or "" when the
// failure is not tied to one (delivery).
func (k FailureKind) Field() string {
	return failureFields[k]
}

// Failures is an ordered list of failure kinds. A non-empty Failures is
// also an error so it can travel through error returns unchanged.
type Failures []FailureKind

func (f Failures) Error() string {
	return strings.Join(f.Messages(), " ")
}

// Messages returns the display messages in order.
func (f Failures) Messages() []string {
	out := make([]string, 0, len(f))
	for _, k := range f {
		out = append(out, k.Message())
	}
	return out
}

// Kinds returns a copy of the kinds in order.
func (f Failures) Kinds() []FailureKind {
	return append([]FailureKind(nil), f...)
}

// Has reports whether kind is present.
func (f Failures) Has(kind FailureKind) bool {
	for _, k := range f {
		if k == kind {
			return true
		}
	}
	return false
}

// Strings returns the identifiers of all kinds, for structured logs.
func (f Failures) Strings() []string {
	out := make([]string, 0, len(f))
	for _, k := range f {
		out = append(out, k.String())
	}
	return out
}
