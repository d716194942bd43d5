package quiz

import "fmt"

// Kind classifies a quiz service failure.
type Kind string

const (
	KindExtractionFailed      Kind = "extraction_failed"
	KindGenerationUnavailable Kind = "generation_unavailable"
	KindGenerationMalformed   Kind = "generation_malformed"
	KindSessionNotFound       Kind = "session_not_found"
	KindQuestionNotFound      Kind = "question_not_found"
	KindInvalidAnswer         Kind = "invalid_answer"
	KindStreamingFailed       Kind = "streaming_failed"
	KindInvalidRequest        Kind = "invalid_request"
)

// Error is a classified failure. Message is safe to show to clients;
// Err carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrExtractionFailed      = &Error{Kind: KindExtractionFailed}
	ErrGenerationUnavailable = &Error{Kind: KindGenerationUnavailable}
	ErrGenerationMalformed   = &Error{Kind: KindGenerationMalformed}
	ErrSessionNotFound       = &Error{Kind: KindSessionNotFound}
	ErrQuestionNotFound      = &Error{Kind: KindQuestionNotFound}
	ErrInvalidAnswer         = &Error{Kind: KindInvalidAnswer}
	ErrStreamingFailed       = &Error{Kind: KindStreamingFailed}
	ErrInvalidRequest        = &Error{Kind: KindInvalidRequest}
)

// Errorf builds an *Error with a formatted client-safe message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that keeps err as its cause.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
