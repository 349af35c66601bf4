// Package validation runs declarative per-field rule sets against inbound
// payloads and reports ordered {field, message} violations.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Violation is a single failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries the ordered violations of a rejected payload.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Single builds an Error holding one violation.
func Single(field, message string) *Error {
	return &Error{Violations: []Violation{{Field: field, Message: message}}}
}

// RuleSet names the messages reported for each failing field. Rules themselves
// are the `validate` struct tags of the payload type.
type RuleSet struct {
	Name string
	// Messages maps a JSON field path (e.g. "personalInfo.email") to the
	// message reported when any rule on that field fails.
	Messages map[string]string
	// TagMessages overrides Messages for a specific "path|tag" pair.
	TagMessages map[string]string
}

func (rs RuleSet) message(field, tag string) string {
	if msg, ok := rs.TagMessages[field+"|"+tag]; ok {
		return msg
	}
	if msg, ok := rs.Messages[field]; ok {
		return msg
	}
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return field + " is too short"
	default:
		return field + " is invalid"
	}
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks payload against its struct tags and returns nil or *Error.
// Violations keep the declaration order of the payload's fields.
func Validate(rs RuleSet, payload any) error {
	err := engine().Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := trimRoot(fe.Namespace())
		out.Violations = append(out.Violations, Violation{
			Field:   field,
			Message: rs.message(field, fe.Tag()),
		})
	}
	return out
}

// trimRoot drops the leading struct type name from a validator namespace.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
