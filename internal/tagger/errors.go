package tagger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind represents the category of a generation failure.
// It is informational only; every kind propagates the same way.
type ErrorKind int

const (
	// KindUnknown indicates an unexpected error
	KindUnknown ErrorKind = iota
	// KindNetwork indicates the provider could not be reached
	KindNetwork
	// KindAuth indicates a missing, malformed or rejected credential
	KindAuth
	// KindService indicates the provider answered with an error status
	KindService
	// KindCanceled indicates the caller's context was canceled or timed out
	KindCanceled
)

// String returns a short name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindService:
		return "service"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerationError is the single error type returned by GenerateTags.
// Message carries the underlying error text unchanged.
type GenerationError struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying provider error
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// newGenerationError wraps a provider failure.
func newGenerationError(provider string, err error) *GenerationError {
	return &GenerationError{
		Kind:     classify(err),
		Provider: provider,
		Message:  err.Error(),
		Err:      err,
	}
}

// Hints returns troubleshooting tips for a failure kind.
func Hints(kind ErrorKind) []string {
	switch kind {
	case KindAuth:
		return []string{
			"Export GEMINI_API_KEY (or API_KEY) for the gemini provider",
			"Export OPENAI_API_KEY for the openai provider",
			"Check the key has not been revoked",
		}
	case KindNetwork:
		return []string{
			"Check your internet connection",
			"Check proxy settings (HTTPS_PROXY)",
		}
	case KindService:
		return []string{
			"The model service returned an error; try again shortly",
			"Check the configured model name (keywordmaster config show)",
		}
	case KindCanceled:
		return []string{"The request was interrupted before the model replied"}
	default:
		return []string{"Run with --log-level debug for details"}
	}
}

// HintsFor returns troubleshooting tips for err, or nil if err is not a
// GenerationError.
func HintsFor(err error) []string {
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		return nil
	}
	return Hints(genErr.Kind)
}

// IsGenerationError reports whether err is or wraps a GenerationError
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// statusError carries the HTTP status a provider reported for a failure.
// Providers wrap their SDK errors in it so classification stays SDK agnostic.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }

func (e *statusError) Unwrap() error { return e.err }

// StatusCode returns the HTTP status reported by the provider
func (e *statusError) StatusCode() int { return e.status }

// withStatus wraps err with an HTTP status. A zero status leaves err as is.
func withStatus(status int, err error) error {
	if status == 0 {
		return err
	}
	return &statusError{status: status, err: err}
}

// credentialError marks a failure to build a client from the configured key.
type credentialError struct {
	err error
}

func (e *credentialError) Error() string { return e.err.Error() }

func (e *credentialError) Unwrap() error { return e.err }

func classify(err error) ErrorKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var credErr *credentialError
	if errors.As(err, &credErr) {
		return KindAuth
	}

	var withCode interface{ StatusCode() int }
	if errors.As(err, &withCode) {
		switch code := withCode.StatusCode(); {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return KindAuth
		case code >= 400:
			return KindService
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	return KindUnknown
}
