package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "SERVICE_UNAVAILABLE", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable)))
}

func TestNewBadRequestError_CodeOverride(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("bad", false, nil, nil, nil).Code)

	code := "BOOKING_INVALID"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "name", Error: "x"}}, nil)
	assert.Equal(t, "BOOKING_INVALID", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Len(t, err.Errors, 1)
}

func TestHTTPError_WithAction(t *testing.T) {
	base := NewBadRequestError("Invalid session token.", true, nil, nil, nil)
	withAction := base.WithAction(&Action{Type: ActionTypeRefreshToken})

	assert.Nil(t, base.Action)
	assert.Equal(t, ActionTypeRefreshToken, withAction.Action.Type)
	assert.Equal(t, base.Message, withAction.Message)
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewServiceUnavailableError("down", true, nil, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}
