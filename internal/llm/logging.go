package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizgen/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. providerName is the
// configured provider ("openai", "gemini", ...) recorded on every event.
func WithLogging(p Provider, providerName string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.baseEvent(ctx, req, start)
	data.Success = err == nil

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.append(ctx, data)
	return resp, err
}

// Stream opens the inner stream and records a single event once the stream
// finishes, fails, or is closed early by the consumer.
func (l *LoggingProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	start := time.Now()

	s, err := l.inner.Stream(ctx, req)
	if err != nil {
		data := l.baseEvent(ctx, req, start)
		data.Streamed = true
		data.ErrorMessage = err.Error()
		l.append(ctx, data)
		return nil, err
	}

	return &loggedStream{
		inner: s,
		ctx:   ctx,
		req:   req,
		start: start,
		owner: l,
	}, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) baseEvent(ctx context.Context, req Request, start time.Time) store.LLMRequestEventData {
	return store.LLMRequestEventData{
		CallID:      uuid.NewString(),
		SessionID:   SessionFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		RequestBody: serializeRequest(req),
	}
}

func (l *LoggingProvider) append(ctx context.Context, data store.LLMRequestEventData) {
	// The request context may already be cancelled (client went away);
	// the event is still worth keeping.
	ctx = context.WithoutCancel(ctx)

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
}

var errStreamClosed = errors.New("stream closed before completion")

// loggedStream accumulates the streamed text so it can be recorded.
type loggedStream struct {
	inner Stream
	ctx   context.Context
	req   Request
	start time.Time
	owner *LoggingProvider

	text strings.Builder
	once sync.Once
}

func (s *loggedStream) Recv() (string, error) {
	frag, err := s.inner.Recv()
	if err == nil {
		s.text.WriteString(frag)
		return frag, nil
	}
	if errors.Is(err, io.EOF) {
		s.finish(nil)
	} else {
		s.finish(err)
	}
	return frag, err
}

func (s *loggedStream) Close() error {
	err := s.inner.Close()
	cause := context.Cause(s.ctx)
	if cause == nil {
		cause = errStreamClosed
	}
	// No-op when Recv already recorded the outcome.
	s.finish(cause)
	return err
}

func (s *loggedStream) finish(err error) {
	s.once.Do(func() {
		data := s.owner.baseEvent(s.ctx, s.req, s.start)
		data.Streamed = true
		data.Success = err == nil
		data.ResponseBody = s.text.String()
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		s.owner.append(s.ctx, data)
	})
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
