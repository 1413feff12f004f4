package errs

import "strings"

// FieldError is a single field-level problem, e.g.
//
//	{ "field": "email", "error": "Please enter a valid email address." }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect carries a target URL in Action.Value.
	ActionTypeRedirect ActionType = "redirect"

	// ActionTypeRefreshToken tells script clients to fetch a fresh session
	// token before resubmitting.
	ActionTypeRefreshToken ActionType = "refresh_token"
)

// Action is an optional client instruction attached to an error.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every handler returns.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BOOKING_INVALID").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show verbatim in the UI.
//   - Errors: ordered per-field errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithAction returns a copy carrying the given client instruction.
func (e *HTTPError) WithAction(action *Action) *HTTPError {
	cp := *e
	cp.Action = action
	return &cp
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
