package feedback

import "time"

// Config controls the feedback LLM call.
type Config struct {
	// MaxTokens keeps feedback to a few sentences.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds the whole streamed call. Zero means no limit beyond
	// the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   150,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}
