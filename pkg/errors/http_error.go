package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const UnknownErrorMessage = "Unknown error"

var ErrUnauthenticated = errors.New("authentication token not found")

type CustomError interface {
	Error() string
}

// SessionExpiredError is returned for any upstream 401.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	if e.Message == "" {
		return "session expired"
	}
	return "session expired: " + e.Message
}

type HttpError struct {
	Status  int
	Message string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
}

type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.After)
}

// ValidationError carries per-field messages keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// WrapHTTPStatus maps a non-2xx upstream response onto the error taxonomy.
func WrapHTTPStatus(status int, body []byte) CustomError {
	message := DetailMessage(body)

	if status == http.StatusUnauthorized {
		if message == UnknownErrorMessage {
			message = ""
		}
		return &SessionExpiredError{Message: message}
	}

	return &HttpError{
		Status:  status,
		Message: message,
	}
}

// DetailMessage extracts a readable message from `{"detail": string | [{loc, msg}]}`.
func DetailMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return UnknownErrorMessage
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String && detail.String() != "":
		return detail.String()
	case detail.IsArray():
		var messages []string
		for _, entry := range detail.Array() {
			msg := entry.Get("msg").String()
			if msg == "" {
				continue
			}
			var loc []string
			for _, part := range entry.Get("loc").Array() {
				loc = append(loc, part.String())
			}
			if len(loc) > 0 {
				msg = strings.Join(loc, ".") + ": " + msg
			}
			messages = append(messages, msg)
		}
		if len(messages) > 0 {
			return strings.Join(messages, "; ")
		}
	}

	return UnknownErrorMessage
}

// Notification is the text a console shows for err.
func Notification(err error) string {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}

	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		return "Network error, please try again"
	}

	var expired *SessionExpiredError
	if errors.As(err, &expired) {
		return "Session expired or unauthorized. Please log in again."
	}

	if errors.Is(err, ErrUnauthenticated) {
		return "Authentication token not found. Please log in."
	}

	return err.Error()
}
