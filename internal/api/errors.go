package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ConfigError is returned when the client is misconfigured
type ConfigError string

// Error implements the error interface
func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrNilConfig  ConfigError = "config cannot be nil"
	ErrNoBaseURL  ConfigError = "base URL is required"
	ErrNilRequest ConfigError = "request cannot be nil"
	ErrNoPath     ConfigError = "request path must start with /"
)

// ConnectivityMessage is what views show when the server could not be reached
const ConnectivityMessage = "could not connect to the server"

// Error is a non-2xx response from the API
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ConnectivityError means no response reached the client
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %v", ConnectivityMessage, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether the server rejected the bearer token
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsConnectivity reports whether err is a transport failure
func IsConnectivity(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// UserMessage is the banner text for err. Server errors are shown
// verbatim, transport failures get the generic connectivity message and
// anything else shows fallback, or the error text when fallback is empty.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case IsConnectivity(err), errors.Is(err, context.DeadlineExceeded):
		return ConnectivityMessage
	case fallback != "":
		return fallback
	default:
		return err.Error()
	}
}
