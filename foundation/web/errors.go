package web

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ErrorResponse is the form used for API responses from failures in the API.
type ErrorResponse struct {
	Status bool         `json:"status"`
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (err *Error) Error() string {
	return err.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (err *Error) Unwrap() error {
	return err.Err
}

// StatusOf reports the HTTP status carried by err, or 0 when err is not a
// request error.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}
	return 0
}

// Required checks that every named field of the struct pointed to by s holds
// a non-zero value. A name may also be a comma separated list of names.
func Required(s any, fields ...string) []FieldError {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return []FieldError{{Field: "body", Error: "is required"}}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var list []FieldError
	for _, group := range fields {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			sf, ok := v.Type().FieldByName(name)
			if !ok {
				list = append(list, FieldError{Field: name, Error: "unknown field"})
				continue
			}

			f := v.FieldByIndex(sf.Index)
			if f.IsZero() || (f.Kind() == reflect.String && strings.TrimSpace(f.String()) == "") {
				list = append(list, FieldError{Field: jsonName(sf), Error: fmt.Sprintf("%s is required", jsonName(sf))})
			}
		}
	}

	return list
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return sf.Name
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return sf.Name
	}
	return tag
}
