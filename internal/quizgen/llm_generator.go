package quizgen

import (
	"context"
	"errors"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate makes one non-streaming call and parses the result. Malformed
// output is never retried here.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	count := input.Count
	if count <= 0 {
		count = g.config.DefaultCount
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	text := truncateRunes(input.Text, g.config.MaxSourceChars)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text, count)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	return parseQuestions(resp.Text(), count)
}

func classifyProviderError(err error) error {
	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		return quiz.Wrap(quiz.KindGenerationMalformed, err, msgUnparseable)
	}
	return quiz.Wrap(quiz.KindGenerationUnavailable, err, llm.UserMessage(err))
}
