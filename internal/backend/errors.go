package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed backend call so callers can branch on it
// instead of inspecting response text.
type ErrorCode string

const (
	CodeNetwork      ErrorCode = "network"
	CodeBadRequest   ErrorCode = "bad_request"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeForbidden    ErrorCode = "forbidden"
	CodeNotFound     ErrorCode = "not_found"
	CodeConflict     ErrorCode = "conflict"
	CodeRejected     ErrorCode = "rejected" // 2xx whose envelope reports success=false
	CodeServer       ErrorCode = "server"
	CodeDecode       ErrorCode = "decode"
)

// Error is returned by every Client method on failure.
type Error struct {
	Op      string
	Code    ErrorCode
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: backend returned %d (%s): %s", e.Op, e.Status, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the ErrorCode from err, or "" when err is not a backend error.
func CodeOf(err error) ErrorCode {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// MessageOf returns the backend's own message for err, if it sent one.
func MessageOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status >= 500:
		return CodeServer
	default:
		return CodeBadRequest
	}
}
