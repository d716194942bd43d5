package quizgen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxSourceChars caps how much source text goes into the prompt.
	// Longer text is truncated silently, keeping the prefix.
	MaxSourceChars int

	// DefaultCount is used when the caller does not ask for a count.
	DefaultCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds the single LLM call.
	Timeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxSourceChars: 3500,
		DefaultCount:   10,
		MaxTokens:      2048,
		Temperature:    0.7,
		Timeout:        30 * time.Second,
	}
}
