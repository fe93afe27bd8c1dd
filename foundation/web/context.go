package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin request context together with the request scoped
// context.Context that middlewares enrich (claims, request id).
type Context struct {
	*gin.Context
	Ctx context.Context

	app         *App
	paramErrors []FieldError
	queryErrors []FieldError
}

// Log returns the application logger, or the default one outside an App.
func (c *Context) Log() *slog.Logger {
	if c.app == nil || c.app.log == nil {
		return slog.Default()
	}
	return c.app.log
}

// Respond converts a Go value to JSON and sends it to the client.
func (c *Context) Respond(data any, statusCode int) error {
	if statusCode == http.StatusNoContent || data == nil {
		c.Status(statusCode)
		return nil
	}

	c.JSON(statusCode, data)
	return nil
}

// RespondError sends an error response back to the client. Request errors
// keep their message, anything else is reported as an internal error.
func (c *Context) RespondError(err error) error {
	production := c.app != nil && c.app.production

	status := StatusOf(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}

	response := ErrorResponse{Error: err.Error()}

	var webErr *Error
	if errors.As(err, &webErr) {
		response.Error = webErr.Err.Error()
		response.Fields = webErr.Fields
	}

	if status >= http.StatusInternalServerError {
		if c.app != nil {
			c.app.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		}
		response.Error = strings.ToLower(http.StatusText(status))
		if !production {
			response.Detail = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, response)
	return nil
}

// BindFunc decodes the request into data according to its content type and
// checks that the named fields are present.
func (c *Context) BindFunc(data any, required ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "invalid request body"), http.StatusBadRequest)
	}

	if fields := Required(data, required...); len(fields) > 0 {
		return &Error{
			Err:    errors.New(joinFieldErrors(fields)),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam reads a path parameter converted to the given kind. Conversion
// failures are collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) any {
	raw := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "must be an integer"})
		}
		return v
	default:
		if raw == "" {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "is required"})
		}
		return raw
	}
}

// ValidParam reports the errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New(joinFieldErrors(c.paramErrors)),
		Status: http.StatusBadRequest,
		Fields: c.paramErrors,
	}
}

// GetQueryFunc reads an optional query parameter converted to the given
// kind. It returns nil when the parameter is absent and a pointer otherwise.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) any {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be an integer"})
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be a boolean"})
			return nil
		}
		return &v
	default:
		return &raw
	}
}

// ValidQuery reports the errors collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New(joinFieldErrors(c.queryErrors)),
		Status: http.StatusBadRequest,
		Fields: c.queryErrors,
	}
}

func joinFieldErrors(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f.Error, f.Field) {
			parts = append(parts, f.Error)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Error))
	}
	return strings.Join(parts, "; ")
}
