// Package feedback streams short coaching messages for wrong quiz answers.
package feedback

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

// Streamer produces feedback chunks for a submitted answer.
type Streamer struct {
	provider llm.Provider
	config   Config
}

// NewStreamer creates a Streamer backed by provider.
func NewStreamer(provider llm.Provider, cfg Config) *Streamer {
	return &Streamer{provider: provider, config: cfg}
}

// Stream returns a lazy, single-use sequence of chunks.
//
// A correct answer yields the affirmation and nothing else. An incorrect
// answer yields word-sized chunks of streamed LLM feedback followed by
// DoneMarker. If the LLM call fails the sequence yields one fallback chunk
// naming the correct answer and ends without DoneMarker.
//
// Breaking out of the range loop cancels and closes the upstream stream.
func (s *Streamer) Stream(ctx context.Context, q quiz.Question, userAnswer string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if quiz.IsCorrect(q, userAnswer) {
			yield(quiz.CorrectExplanation)
			return
		}

		ctx, cancel := s.callContext(ctx)
		defer cancel()

		upstream, err := s.provider.Stream(ctx, s.request(q, userAnswer))
		if err != nil {
			s.fail(ctx, q, err, yield)
			return
		}
		defer upstream.Close()

		var seg Segmenter
		for {
			frag, err := upstream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				s.fail(ctx, q, err, yield)
				return
			}
			for _, chunk := range seg.Push(frag) {
				if !yield(chunk) {
					return
				}
			}
		}

		for _, chunk := range seg.Flush() {
			if !yield(chunk) {
				return
			}
		}
	}
}

func (s *Streamer) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)
	if s.config.Timeout > 0 {
		return context.WithTimeout(ctx, s.config.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Streamer) request(q quiz.Question, userAnswer string) llm.Request {
	return llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, userAnswer)},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}
}

// fail emits the fallback chunk unless the consumer's own context is gone,
// in which case there is nobody left to read it.
func (s *Streamer) fail(ctx context.Context, q quiz.Question, err error, yield func(string) bool) {
	if errors.Is(context.Cause(ctx), context.Canceled) {
		return
	}
	yield(fallbackChunk(q, llm.UserMessage(err)))
}
