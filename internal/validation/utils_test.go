package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/valeria-photo/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"olena@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"", false},
		{"bad", false},
		{"a@b", false},
		{"a@b.", false},
		{"@example.com", false},
		{"a@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.in))
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("1f0e3dad-9990-4c2e-8a3b-1b5c2d3e4f50"))
	assert.False(t, IsValidUUID("not-a-uuid"))
}

type samplePayload struct {
	Name string `json:"name" validate:"max=3"`
}

func (p *samplePayload) Validate() error {
	return validator.New().Struct(p)
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"abc"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		var p samplePayload
		require.NoError(t, BindAndValidate(c, &p))
		assert.Equal(t, "abc", p.Name)
	})

	t.Run("too long", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"abcd"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		err := BindAndValidate(c, &samplePayload{})
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "must not exceed 3 characters", httpErr.Errors[0].Error)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		err := BindAndValidate(c, &samplePayload{})
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})
}
