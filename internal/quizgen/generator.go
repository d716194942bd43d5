// Package quizgen turns source text into validated quiz questions using an
// LLM provider.
package quizgen

import (
	"context"

	"github.com/abhisek/quizgen/internal/quiz"
)

// Generator produces quiz questions from source text.
type Generator interface {
	// Generate returns up to input.Count validated questions with ids
	// assigned 1..n. Failures are *quiz.Error of kind
	// generation_unavailable or generation_malformed.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// GenerateInput is the source material for one generation call.
type GenerateInput struct {
	Text  string
	Count int // <= 0 means Config.DefaultCount
}
