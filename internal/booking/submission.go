package booking

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormName is the value of the form_name field that marks a POST as a
// booking submission.
const FormName = "booking"

// Submission is the untrusted payload posted by the booking form or by a
// script client. Every field is optional.
//
// The validate tags are request-shape guards (sizes, form name); they run
// before the booking decision and are not booking failures.
type Submission struct {
	FormName  string   `form:"form_name" json:"form_name" validate:"omitempty,eq=booking"`
	Name      string   `form:"name" json:"name" validate:"max=200"`
	Email     string   `form:"email" json:"email" validate:"max=254"`
	Phone     string   `form:"phone" json:"phone" validate:"max=64"`
	ShootType string   `form:"shoot_type" json:"shoot_type" validate:"max=100"`
	Date      string   `form:"date" json:"date" validate:"max=64"`
	Message   string   `form:"message" json:"message" validate:"max=5000"`
	Agree     Checkbox `form:"agree" json:"agree"`
	// Company is the honeypot: hidden from people, filled in by bots.
	Company   string `form:"company" json:"company"`
	CSRFToken string `form:"csrf_token" json:"csrf_token" validate:"max=128"`

	UTMSource   string `form:"utm_source" json:"utm_source" validate:"max=500"`
	UTMMedium   string `form:"utm_medium" json:"utm_medium" validate:"max=500"`
	UTMCampaign string `form:"utm_campaign" json:"utm_campaign" validate:"max=500"`
	UTMContent  string `form:"utm_content" json:"utm_content" validate:"max=500"`
	UTMTerm     string `form:"utm_term" json:"utm_term" validate:"max=500"`
	Referrer    string `form:"referrer" json:"referrer" validate:"max=2000"`
}

var shapeValidator = newShapeValidator()

func newShapeValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire name (utm_source, not UTMSource).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the request shape. It satisfies validation.Validatable.
func (s *Submission) Validate() error {
	return shapeValidator.Struct(s)
}

// IsBooking reports whether the POST carried form_name=booking.
func (s *Submission) IsBooking() bool {
	return s.FormName == FormName
}

// Checkbox is an HTML checkbox. For form posts any submitted value means
// checked, matching browsers that only send checked boxes; the explicit
// negatives below exist for script clients.
type Checkbox bool

func isNegative(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "off":
		return true
	}
	return false
}

// UnmarshalParam implements echo.BindUnmarshaler. It is only called when
// the field is present in the form.
func (c *Checkbox) UnmarshalParam(param string) error {
	*c = Checkbox(!isNegative(param))
	return nil
}

// UnmarshalJSON accepts booleans, strings and numbers.
func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*c = Checkbox(v)
	case string:
		*c = Checkbox(v != "" && !isNegative(v))
	case float64:
		*c = Checkbox(v != 0)
	default:
		*c = false
	}
	return nil
}

// MarshalJSON keeps the wire form a plain boolean.
func (c Checkbox) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(c))
}
