package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// MsgUnableToConnect is reported when no response reached the client.
	MsgUnableToConnect = "Network error: Unable to connect to server"

	// MsgNetworkError replaces the detail of an error response whose body is not JSON,
	// and reports a response whose body broke off while reading.
	MsgNetworkError = "Network error occurred"
)

// Kind classifies a client failure.
type Kind int

const (
	// KindTransport means the request never produced a response. Status is 0.
	KindTransport Kind = iota
	// KindHTTP means the backend answered with a non-2xx status.
	KindHTTP
	// KindDecode means a 2xx body did not match the expected schema.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every client operation.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code, 0 when the server was never reached.
	Status int
	// Body is the decoded error body, nil when there was none or it was not JSON.
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: MsgUnableToConnect,
		Err:     err,
	}
}

// readError keeps the status of a response whose body could not be read in full.
func readError(status int, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: MsgNetworkError,
		Status:  status,
		Err:     err,
	}
}

func decodeError(status int, err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: fmt.Sprintf("unexpected response body: %v", err),
		Status:  status,
		Err:     err,
	}
}

// httpError builds the error for a non-2xx response from its raw body.
func httpError(status int, raw []byte) *Error {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return &Error{
			Kind:    KindHTTP,
			Message: MsgNetworkError,
			Status:  status,
		}
	}

	return &Error{
		Kind:    KindHTTP,
		Message: detailMessage(status, raw),
		Status:  status,
		Body:    json.RawMessage(raw),
	}
}

// detailMessage picks the human readable part of an error body. A string detail is
// used as-is; a validation list contributes its msg entries.
func detailMessage(status int, raw []byte) string {
	detail := gjson.GetBytes(raw, "detail")
	switch {
	case detail.Type == gjson.String && detail.String() != "":
		return detail.String()
	case detail.IsArray():
		var msgs []string
		for _, item := range detail.Array() {
			msg := item.Get("msg").String()
			if msg == "" {
				continue
			}
			if field := lastLocation(item.Get("loc")); field != "" {
				msg = field + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func lastLocation(loc gjson.Result) string {
	if !loc.IsArray() {
		return ""
	}
	parts := loc.Array()
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if last.Type != gjson.String || last.String() == "body" {
		return ""
	}
	return last.String()
}

// MessageOf returns the user-facing message for err, or fallback when err did not come
// from the client or carries an empty message.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, 0 otherwise.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
