package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

func fourQuestionsJSON() json.RawMessage {
	return json.RawMessage(`[
		{"question": "What is the capital of France?", "answer": "Paris", "options": ["Paris", "Lyon", "Nice", "Caen"]},
		{"question": "Which planet is largest?", "answer": "Jupiter", "options": ["Mars", "Jupiter", "Venus", "Earth"]},
		{"question": "What gas do plants absorb?", "answer": "carbon dioxide", "options": ["Oxygen", "Carbon Dioxide", "Nitrogen", "Helium"]},
		{"question": "How many continents are there?", "answer": 7, "options": [5, 6, 7, 8]}
	]`)
}

func TestGenerate_AcceptsAndRepairs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fourQuestionsJSON()})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), GenerateInput{Text: "Some source text.", Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if want := []string{"1", "2", "3", "4"}[i]; q.ID != want {
			t.Errorf("question %d id = %q, want %q", i, q.ID, want)
		}
		if err := q.Validate(); err != nil {
			t.Errorf("question %s violates invariants: %v", q.ID, err)
		}
	}
	if qs[2].CorrectAnswer != "Carbon Dioxide" {
		t.Fatalf("case-only mismatch should normalize to option casing, got %q", qs[2].CorrectAnswer)
	}
	if qs[3].CorrectAnswer != "7" || qs[3].Options[2] != "7" {
		t.Fatalf("numbers should be stringified, got %+v", qs[3])
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fourQuestionsJSON()})
	gen := New(mock, DefaultConfig())

	long := strings.Repeat("é", 5000)
	if _, err := gen.Generate(context.Background(), GenerateInput{Text: long, Count: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.System != systemPrompt {
		t.Fatalf("unexpected system prompt %q", req.System)
	}
	if req.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", req.Temperature)
	}
	if req.Schema != nil {
		t.Fatal("top-level array output must not be sent as a structured-output schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Create exactly 4 multiple-choice questions") {
		t.Fatal("prompt should state the requested count")
	}
	if strings.Count(msg, "é") != 3500 {
		t.Fatalf("source text should be truncated to 3500 characters, got %d", strings.Count(msg, "é"))
	}
}

func TestGenerate_DefaultCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fourQuestionsJSON()})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), GenerateInput{Text: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "Create exactly 10 ") {
		t.Fatal("expected the default count of 10 in the prompt")
	}
}

func TestGenerate_DropsEntryMissingAnswer(t *testing.T) {
	content := json.RawMessage(`[
		{"question": "Q1", "answer": "A", "options": ["A", "B", "C", "D"]},
		{"question": "Q2", "options": ["A", "B", "C", "D"]},
		{"question": "Q3", "answer": "C", "options": ["A", "B", "C", "D"]}
	]`)
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: content}), DefaultConfig())

	qs, err := gen.Generate(context.Background(), GenerateInput{Text: "x", Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 accepted questions, got %d", len(qs))
	}
	if qs[1].ID != "2" || qs[1].Text != "Q3" {
		t.Fatalf("ids should be renumbered among accepted entries, got %+v", qs[1])
	}
}

func TestGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Sure! Here are your questions: 1. What is..."},
		{"object not array", `{"question": "Q", "answer": "A"}`},
		{"empty array", `[]`},
		{"nothing salvageable", `[{"question": "Q"}, {"answer": "A"}, {"question": "Q", "answer": "Z", "options": ["A","B"]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			gen := New(mock, DefaultConfig())

			_, err := gen.Generate(context.Background(), GenerateInput{Text: "x", Count: 3})
			if !errors.Is(err, quiz.ErrGenerationMalformed) {
				t.Fatalf("expected generation_malformed, got %v", err)
			}
			if mock.CallCount() != 1 {
				t.Fatalf("malformed output must not be retried, got %d calls", mock.CallCount())
			}
		})
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrAuthFailed{Err: errors.New("invalid key sk-123")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Text: "x"})
	if !errors.Is(err, quiz.ErrGenerationUnavailable) {
		t.Fatalf("expected generation_unavailable, got %v", err)
	}
	var qe *quiz.Error
	errors.As(err, &qe)
	if strings.Contains(qe.Message, "sk-123") {
		t.Fatalf("client message leaks upstream detail: %q", qe.Message)
	}
}

func TestGenerate_AppliesTimeout(t *testing.T) {
	p := &deadlineProvider{}
	cfg := DefaultConfig()
	cfg.Timeout = time.Minute
	gen := New(p, cfg)

	_, _ = gen.Generate(context.Background(), GenerateInput{Text: "x"})
	if !p.hadDeadline {
		t.Fatal("expected the provider call to carry a deadline")
	}
	if p.purpose != llm.PurposeQuestionGen {
		t.Fatalf("expected purpose %q, got %q", llm.PurposeQuestionGen, p.purpose)
	}
}

type deadlineProvider struct {
	llm.MockProvider
	hadDeadline bool
	purpose     string
}

func (d *deadlineProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	_, d.hadDeadline = ctx.Deadline()
	d.purpose = llm.PurposeFrom(ctx)
	return &llm.Response{Content: json.RawMessage(`[{"question":"Q","answer":"A"}]`)}, nil
}
