// Package validation checks candidate employee records before they are
// handed to the record store.
//
// The engine wraps go-playground/validator. The struct tags live on
// types.Employee; this package registers the custom rules those tags
// reference and turns validator.ValidationErrors into an ErrorMap keyed by
// JSON field name, so the form can show every problem at once.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// DateLayout is the ISO 8601 calendar-date layout used for dob.
const DateLayout = "2006-01-02"

// MinimumAge is the youngest age, in whole years, an employee may have.
const MinimumAge = 18

// ErrorMap maps a JSON field name to a human-readable violation message.
// An empty map means the candidate is acceptable.
type ErrorMap map[string]string

// Empty reports whether the map holds no violations.
func (m ErrorMap) Empty() bool { return len(m) == 0 }

// Field names as they appear in JSON and in ErrorMap keys.
const (
	FieldFullName     = "fullName"
	FieldGender       = "gender"
	FieldDOB          = "dob"
	FieldState        = "state"
	FieldProfileImage = "profileImage"
)

// Engine validates employee candidates against a clock.
// It is safe for concurrent use.
type Engine struct {
	validate      *validator.Validate
	now           func() time.Time
	maxImageBytes int64
}

// Option customises an Engine.
type Option func(*Engine)

// WithMaxImageBytes overrides the upload size limit.
func WithMaxImageBytes(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxImageBytes = n
		}
	}
}

// New builds an Engine. now supplies "today" for the age rule; pass nil to
// use time.Now.
func New(now func() time.Time, opts ...Option) *Engine {
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		validate:      validator.New(),
		now:           now,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Report fields by their json name ("fullName") rather than the Go
	// name ("FullName") so ErrorMap keys match the payload.
	e.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = e.validate.RegisterValidation("notblank", notBlank)
	_ = e.validate.RegisterValidation("isodate", isoDate)
	_ = e.validate.RegisterValidation("gender", oneOf(types.Genders))
	_ = e.validate.RegisterValidation("usstate", oneOf(types.States))
	_ = e.validate.RegisterValidation("adult", e.adult)

	return e
}

// Validate checks every field of candidate and returns all violations.
// The candidate's ID is ignored.
func (e *Engine) Validate(candidate types.Employee) ErrorMap {
	errs := ErrorMap{}

	err := e.validate.Struct(candidate)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable if Struct is handed a non-struct.
		errs["employee"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return errs
}

// Age returns the age in whole years on the calendar date of today.
// The naive year difference is decremented when today's month/day precedes
// the birth month/day.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func (e *Engine) adult(fl validator.FieldLevel) bool {
	dob, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		// isodate reports malformed dates.
		return true
	}
	return Age(dob, e.now()) >= MinimumAge
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return lo.Contains(allowed, fl.Field().String())
	}
}

var messages = map[string]map[string]string{
	FieldFullName: {
		"notblank": "Full Name is required",
	},
	FieldGender: {
		"required": "Gender is required",
		"gender":   "Gender must be one of " + strings.Join(types.Genders, ", "),
	},
	FieldDOB: {
		"required": "Date of Birth is required",
		"isodate":  "Date of Birth must be a valid date (YYYY-MM-DD)",
		"adult":    "Employee must be at least 18 years old",
	},
	FieldState: {
		"required": "State is required",
		"usstate":  "State must be a valid US state",
	},
	FieldProfileImage: {
		"required": "Profile Image is required",
	},
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return field + " is invalid"
}
