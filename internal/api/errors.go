package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call to the formbot service.
type Kind string

// Failure kinds reported by the client.
const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

// Sentinels for errors.Is checks against an *Error.
var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("server error")
	ErrDecode       = errors.New("malformed response")
)

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels so callers can write errors.Is(err, api.ErrNotFound).
func (e *Error) Is(target error) bool {
	return kindSentinel(e.Kind) == target
}

// KindOf returns the kind of err, or "" when err did not come from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func kindSentinel(k Kind) error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	}
	return nil
}

// kindForStatus maps a non-2xx status code to a failure kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	}
	return KindServer
}
