// Package apperrors holds the error taxonomy every layer propagates to the
// HTTP boundary: validation, not-found, conflict, authorization, bad-request
// and internal store failures, rendered as a uniform error envelope.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Item is one entry of the error envelope.
type Item struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

// Error is the typed failure carried between layers. Code is the HTTP status
// of the response; Items are the envelope entries. cause keeps the underlying
// store error for logging and is never serialized.
type Error struct {
	Code  int
	Items []Item
	cause error
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		if it.Source != "" {
			msgs = append(msgs, it.Source+": "+it.Message)
			continue
		}
		msgs = append(msgs, it.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

// Envelope is the wire shape of every error response.
type Envelope struct {
	Errors []Item `json:"errors"`
}

func newError(code int, items ...Item) *Error {
	return &Error{Code: code, Items: items}
}

// BadRequest reports malformed caller input, including unknown filter, sort
// or include keys.
func BadRequest(source, format string, args ...any) *Error {
	return newError(http.StatusBadRequest, Item{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Source:  source,
	})
}

// FieldError builds one validation envelope entry.
func FieldError(field, message string) Item {
	return Item{Status: http.StatusUnprocessableEntity, Message: message, Source: field}
}

// Validation reports caller data failing declared rules, one item per
// failing field.
func Validation(items ...Item) *Error {
	return newError(http.StatusUnprocessableEntity, items...)
}

// NotFound reports an identifier that does not resolve to a live row.
func NotFound(resource string, id int64) *Error {
	return newError(http.StatusNotFound, Item{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	})
}

// Conflict reports a violated uniqueness or state constraint. key names the
// offending field or constraint when derivable.
func Conflict(key, message string) *Error {
	return newError(http.StatusConflict, Item{
		Status:  http.StatusConflict,
		Message: message,
		Source:  key,
	})
}

// Forbidden reports a caller lacking rights for the resource instance.
func Forbidden(message string) *Error {
	return newError(http.StatusForbidden, Item{
		Status:  http.StatusForbidden,
		Message: message,
	})
}

// Internal wraps an unexpected store failure. The caller-visible message is
// generic; the wrapped error stays available for logging.
func Internal(err error) *Error {
	return &Error{
		Code: http.StatusInternalServerError,
		Items: []Item{{
			Status:  http.StatusInternalServerError,
			Message: "internal server error",
		}},
		cause: err,
	}
}

// From converts any error into an *Error, defaulting to Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func is(err error, code int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool   { return is(err, http.StatusNotFound) }
func IsConflict(err error) bool   { return is(err, http.StatusConflict) }
func IsValidation(err error) bool { return is(err, http.StatusUnprocessableEntity) }
func IsBadRequest(err error) bool { return is(err, http.StatusBadRequest) }
