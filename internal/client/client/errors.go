package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrBadRequest       = errors.New("bad request")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("malformed response")
	ErrNoAccessToken    = errors.New("access token missing from response")
)

// StatusError describes a non-2xx response. It unwraps to the sentinel
// matching its status code.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %d %s", e.Unwrap(), e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %d %s: %s", e.Unwrap(), e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrBadRequest
	default:
		return ErrUnexpectedStatus
	}
}
