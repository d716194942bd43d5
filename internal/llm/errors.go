package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuthFailed indicates the provider rejected the configured credentials
// (401/403).
type ErrAuthFailed struct {
	Err error
}

func (e *ErrAuthFailed) Error() string {
	return fmt.Sprintf("LLM authentication failed: %v", e.Err)
}

func (e *ErrAuthFailed) Unwrap() error { return e.Err }

// ErrTimeout indicates the request did not complete within its deadline.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// mapStatusError classifies an HTTP status returned by a provider SDK.
// Deadline errors take priority over the status code.
func mapStatusError(status int, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	switch {
	case status == 401 || status == 403:
		return &ErrAuthFailed{Err: err}
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status == 408 || status == 504:
		return &ErrTimeout{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// UserMessage returns a short, client-safe description of an LLM failure.
// It never includes the upstream error text.
func UserMessage(err error) string {
	var (
		auth    *ErrAuthFailed
		rl      *ErrRateLimit
		timeout *ErrTimeout
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &auth):
		return "AI service authentication failed. Please contact support."
	case errors.As(err, &rl):
		return "AI service is currently busy. Please try again in a moment."
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return "AI service took too long to respond. Please try again."
	case errors.As(err, &maxTok):
		return "AI response was cut short. Please try again."
	default:
		return "AI service is unavailable. Please try again."
	}
}
