// Package forms turns raw cafe form submissions into validated input.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"cafes/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Validation failure kinds. Every FieldError unwraps to one of these.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidURL    = errors.New("invalid url")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrTooLong       = errors.New("too long")
	ErrInvalidValue  = errors.New("invalid value")
)

// CafeForm is a raw cafe submission. Checkbox fields hold whatever the
// client sent; an empty string means the box was not ticked.
type CafeForm struct {
	Name         string `json:"name" form:"name" validate:"required,max=250"`
	MapURL       string `json:"map_url" form:"map_url" validate:"required,max=250,weburl"`
	ImgURL       string `json:"img_url" form:"img_url" validate:"required,max=250,weburl"`
	Location     string `json:"location" form:"location" validate:"required,max=250"`
	HasSockets   string `json:"has_sockets" form:"has_sockets"`
	HasToilet    string `json:"has_toilet" form:"has_toilet"`
	HasWifi      string `json:"has_wifi" form:"has_wifi"`
	CanTakeCalls string `json:"can_take_calls" form:"can_take_calls"`
	Seats        string `json:"seats" form:"seats" validate:"oneof=0-10 10-20 20-30 30-40 40-50 50+"`
	CoffeePrice  string `json:"coffee_price" form:"coffee_price" validate:"required,max=250"`
}

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field string `json:"field"`
	Kind  error  `json:"-"`
	// Code is a stable name for Kind, such as "missing_field".
	Code    string `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e FieldError) Unwrap() error {
	return e.Kind
}

// Kind codes reported in FieldError.Code.
const (
	CodeMissingField  = "missing_field"
	CodeInvalidURL    = "invalid_url"
	CodeInvalidChoice = "invalid_choice"
	CodeTooLong       = "too_long"
	CodeInvalidValue  = "invalid_value"
)

// ValidationErrors holds every rejected field of a submission, in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// Get returns the error recorded for field, if any.
func (v ValidationErrors) Get(field string) (FieldError, bool) {
	for _, e := range v {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// Fields maps field names to their messages.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

// Kinds maps field names to their kind codes.
func (v ValidationErrors) Kinds() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Code
	}
	return out
}

// Validator checks CafeForm submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Only reports whether the value parses with a scheme and a host; the
	// address is never contacted.
	if err := v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && u.Scheme != "" && u.Host != ""
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Validate checks form and returns the typed input, or ValidationErrors.
func (v *Validator) Validate(form CafeForm) (models.CafeInput, error) {
	form = form.trimmed()

	if err := v.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.CafeInput{}, fmt.Errorf("failed to validate cafe form: %w", err)
		}
		out := make(ValidationErrors, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, fieldError(e))
		}
		return models.CafeInput{}, out
	}

	return models.CafeInput{
		Name:         form.Name,
		MapURL:       form.MapURL,
		ImgURL:       form.ImgURL,
		Location:     form.Location,
		HasSockets:   checked(form.HasSockets),
		HasToilet:    checked(form.HasToilet),
		HasWifi:      checked(form.HasWifi),
		CanTakeCalls: checked(form.CanTakeCalls),
		Seats:        form.Seats,
		CoffeePrice:  form.CoffeePrice,
	}, nil
}

func fieldError(e validator.FieldError) FieldError {
	fe := FieldError{Field: e.Field()}
	switch e.Tag() {
	case "required":
		fe.Kind, fe.Code, fe.Message = ErrMissingField, CodeMissingField, "This field is required."
	case "weburl":
		fe.Kind, fe.Code, fe.Message = ErrInvalidURL, CodeInvalidURL, "Invalid URL."
	case "oneof":
		fe.Kind, fe.Code, fe.Message = ErrInvalidChoice, CodeInvalidChoice, "Not a valid choice."
	case "max":
		fe.Kind, fe.Code = ErrTooLong, CodeTooLong
		fe.Message = fmt.Sprintf("Field cannot be longer than %s characters.", e.Param())
	default:
		fe.Kind = fmt.Errorf("%w: failed on the %q rule", ErrInvalidValue, e.Tag())
		fe.Code = CodeInvalidValue
		fe.Message = fmt.Sprintf("Field failed on the '%s' rule.", e.Tag())
	}
	return fe
}

func (f CafeForm) trimmed() CafeForm {
	f.Name = strings.TrimSpace(f.Name)
	f.MapURL = strings.TrimSpace(f.MapURL)
	f.ImgURL = strings.TrimSpace(f.ImgURL)
	f.Location = strings.TrimSpace(f.Location)
	f.Seats = strings.TrimSpace(f.Seats)
	f.CoffeePrice = strings.TrimSpace(f.CoffeePrice)
	return f
}

// checked reports whether a checkbox value means "ticked". Besides "" and
// "false", the common off spellings "0", "off", "no" and "n" also count as
// unticked.
func checked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false", "0", "off", "no", "n":
		return false
	}
	return true
}

// FromCafe returns the form snapshot used to pre-fill an edit of c.
func FromCafe(c models.Cafe) CafeForm {
	return CafeForm{
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		HasSockets:   cast.ToString(c.HasSockets),
		HasToilet:    cast.ToString(c.HasToilet),
		HasWifi:      cast.ToString(c.HasWifi),
		CanTakeCalls: cast.ToString(c.CanTakeCalls),
		Seats:        c.Seats,
		CoffeePrice:  c.CoffeePrice,
	}
}

// FromMap builds a form from decoded key/value pairs, such as a JSON body.
// Values of any scalar type are accepted; booleans become "true"/"false".
func FromMap(m map[string]interface{}) CafeForm {
	get := func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		return cast.ToString(v)
	}
	return CafeForm{
		Name:         get("name"),
		MapURL:       get("map_url"),
		ImgURL:       get("img_url"),
		Location:     get("location"),
		HasSockets:   get("has_sockets"),
		HasToilet:    get("has_toilet"),
		HasWifi:      get("has_wifi"),
		CanTakeCalls: get("can_take_calls"),
		Seats:        get("seats"),
		CoffeePrice:  get("coffee_price"),
	}
}

// SeatChoices returns the accepted seat buckets in display order.
func SeatChoices() []string {
	out := make([]string, len(models.SeatBuckets))
	copy(out, models.SeatBuckets)
	return out
}
