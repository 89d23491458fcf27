package submission

import (
	"errors"
	"fmt"
)

// User-facing texts for each failure.
const (
	MsgAuthRequired     = "Please sign in to generate images"
	MsgEmptyPrompt      = "Please enter a prompt to generate an image"
	MsgDomainFallback   = "Failed to generate image"
	MsgGenerationFailed = "Image generation failed"
	MsgTransport        = "Something went wrong"
)

var (
	// ErrAuthRequired: no signed-in user.
	ErrAuthRequired = errors.New("sign-in required")
	// ErrEmptyPrompt: the prompt is empty after trimming.
	ErrEmptyPrompt = errors.New("empty prompt")
	// ErrGenerationFailed: success status but no image reference.
	ErrGenerationFailed = errors.New("image generation failed")
	// ErrBusy: a request from this workflow is still in flight.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrCanceled: the in-flight request was cancelled (view unmounted).
	ErrCanceled = errors.New("generation canceled")
)

// DomainError is an error reported by the endpoint with a non-success status.
type DomainError struct {
	StatusCode int
	Message    string // may be empty
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("endpoint error (status %d): %s", e.StatusCode, e.UserMessage())
}

// UserMessage is the endpoint's message, or the generic fallback.
func (e *DomainError) UserMessage() string {
	if e.Message == "" {
		return MsgDomainFallback
	}
	return e.Message
}

// TransportError wraps network failures and unreadable success bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage maps a workflow error to the notification text shown to the
// user. Returns "" for nil and for errors that are not surfaced (ErrBusy,
// ErrCanceled).
func UserMessage(err error) string {
	var domainErr *DomainError
	var transportErr *TransportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy), errors.Is(err, ErrCanceled):
		return ""
	case errors.Is(err, ErrAuthRequired):
		return MsgAuthRequired
	case errors.Is(err, ErrEmptyPrompt):
		return MsgEmptyPrompt
	case errors.As(err, &domainErr):
		return domainErr.UserMessage()
	case errors.Is(err, ErrGenerationFailed):
		return MsgGenerationFailed
	case errors.As(err, &transportErr):
		return MsgTransport
	default:
		return MsgTransport
	}
}

// outcomeLabel is the metrics/tracing label for err.
func outcomeLabel(err error) string {
	var domainErr *DomainError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, ErrEmptyPrompt):
		return "empty_prompt"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.As(err, &domainErr):
		return "domain_error"
	case errors.Is(err, ErrGenerationFailed):
		return "generation_failed"
	default:
		return "transport_error"
	}
}
