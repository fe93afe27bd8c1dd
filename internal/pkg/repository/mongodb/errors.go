package mongodb

import (
	"net/http"
	"time"

	"hrm/backend/foundation/web"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotFound builds the 404 error returned for a missing document.
func NotFound(message string) error {
	return web.NewRequestError(errors.New(message), http.StatusNotFound)
}

// Internal wraps an unexpected store failure.
func Internal(err error, message string) error {
	return web.NewRequestError(errors.Wrap(err, message), http.StatusInternalServerError)
}

// IsNoDocuments reports whether err means the query matched nothing.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTime reads a request timestamp. It accepts a calendar day
// (YYYY-MM-DD), an RFC 3339 time and the zone-less form sent by browser
// datetime inputs, which is read as UTC.
func ParseTime(field, s string) (time.Time, error) {
	if d, err := date.ParseDate(s); err == nil {
		return d.ToTime().UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &web.Error{
		Err:    errors.Errorf("%s must be a date (YYYY-MM-DD) or a time (RFC 3339)", field),
		Status: http.StatusBadRequest,
		Fields: []web.FieldError{{Field: field, Error: "invalid date"}},
	}
}
