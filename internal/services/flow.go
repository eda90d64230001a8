package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
)

// Kind says what sort of failure a FlowError is, so the web layer can pick a status.
type Kind string

const (
	KindInvalid         Kind = "invalid"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindFailed          Kind = "failed"
)

var (
	ErrNotLoggedIn   = errors.New("no session token")
	ErrNotDentist    = errors.New("user is not a dentist")
	ErrNoChanges     = errors.New("form matches the saved profile")
	ErrNotReviewable = errors.New("booking is not completed")
)

// FlowError is a failed user interaction. Message is what the user sees;
// Err is the cause, kept for logs.
type FlowError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FlowError) Unwrap() error { return e.Err }

func flowErr(kind Kind, message string, cause error) *FlowError {
	return &FlowError{Kind: kind, Message: message, Err: cause}
}

// failed wraps a backend failure, mapping the backend's codes onto kinds.
func failed(message string, cause error) *FlowError {
	kind := KindFailed
	switch backend.CodeOf(cause) {
	case backend.CodeBadRequest:
		kind = KindInvalid
	case backend.CodeUnauthorized:
		kind = KindUnauthenticated
	case backend.CodeForbidden:
		kind = KindForbidden
	case backend.CodeNotFound:
		kind = KindNotFound
	case backend.CodeConflict:
		kind = KindConflict
	}
	return flowErr(kind, message, cause)
}

// Notice is the success message a flow shows, optionally dismissed or
// followed by a navigation after a delay.
type Notice struct {
	Message         string `json:"message"`
	DismissAfterMs  int64  `json:"dismissAfterMs,omitempty"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMs int64  `json:"redirectAfterMs,omitempty"`
}

func notice(message string) *Notice {
	return &Notice{Message: message}
}

func (n *Notice) dismissAfter(d time.Duration) *Notice {
	n.DismissAfterMs = d.Milliseconds()
	return n
}

func (n *Notice) redirectAfter(path string, d time.Duration) *Notice {
	n.Redirect = path
	n.RedirectAfterMs = d.Milliseconds()
	return n
}

func requireSession(token, message string) error {
	if token == "" {
		return flowErr(KindUnauthenticated, message, ErrNotLoggedIn)
	}
	return nil
}
