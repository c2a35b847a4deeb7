package types

import (
	"fmt"
	"net/http"
	"time"
)

// HTTPError is implemented by every error the content handlers know how to map.
type HTTPError interface {
	error
	HTTPStatus() int
}

var (
	_ HTTPError = (*ConfigurationError)(nil)
	_ HTTPError = (*ValidationError)(nil)
	_ HTTPError = (*TimeoutError)(nil)
	_ HTTPError = (*ProviderError)(nil)
	_ HTTPError = (*MissingContentError)(nil)
)

// ConfigurationError reports a missing or malformed setting, usually an API key.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

func (e *ConfigurationError) HTTPStatus() int { return http.StatusInternalServerError }

// ValidationError reports a missing or invalid request field. No provider call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// TimeoutError is returned when a provider does not answer within the bounded window.
type TimeoutError struct {
	Provider Provider
	Elapsed  time.Duration
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out after %.1f seconds", e.Provider, e.Elapsed.Seconds())
}

// ElapsedSeconds is the wall-clock wait before the request was abandoned.
func (e *TimeoutError) ElapsedSeconds() float64 { return e.Elapsed.Seconds() }

func (e *TimeoutError) HTTPStatus() int { return http.StatusGatewayTimeout }

// ProviderError carries a non-success provider status and the raw error body.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API request failed with status %d", e.Provider, e.StatusCode)
}

// HTTPStatus passes the provider's own status through to the caller.
func (e *ProviderError) HTTPStatus() int {
	if e.StatusCode < 400 || e.StatusCode > 599 {
		return http.StatusBadGateway
	}
	return e.StatusCode
}

// MissingContentError means the provider call succeeded but carried no text.
type MissingContentError struct {
	Provider Provider
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("%s response contained no generated content", e.Provider)
}

func (e *MissingContentError) HTTPStatus() int { return http.StatusInternalServerError }

// ErrorBody is the failure envelope returned by every handler.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Details   string `json:"details,omitempty"`
}
