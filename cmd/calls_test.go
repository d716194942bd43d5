package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizgen/internal/store"
)

func record(id int, purpose string, ok bool) store.LLMEventRecord {
	return store.LLMEventRecord{
		ID:        id,
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			CallID:       "call-" + purpose,
			SessionID:    "s1",
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      purpose,
			InputTokens:  100,
			OutputTokens: 20,
			LatencyMs:    350,
			Success:      ok,
		},
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		purpose, want string
	}{
		{"question-gen", "generate"},
		{"feedback", "feedback"},
		{"", "-"},
		{"other", "other"},
	}
	for _, tt := range tests {
		if got := kindOf(tt.purpose); got != tt.want {
			t.Errorf("kindOf(%q) = %q, want %q", tt.purpose, got, tt.want)
		}
	}
}

func TestFailedCalls(t *testing.T) {
	events := []store.LLMEventRecord{
		record(4, "feedback", false),
		record(3, "feedback", true),
		record(2, "question-gen", false),
		record(1, "question-gen", false),
	}

	got := failedCalls(events, 2)
	if len(got) != 2 || got[0].ID != 4 || got[1].ID != 2 {
		t.Fatalf("failedCalls(limit 2) = %+v", got)
	}
	if got := failedCalls(events, 0); len(got) != 3 {
		t.Fatalf("failedCalls(no limit) kept %d, want 3", len(got))
	}
}

func TestRenderCallList(t *testing.T) {
	var buf bytes.Buffer
	renderCallList(&buf, nil)
	if !strings.Contains(buf.String(), "No calls recorded.") {
		t.Fatalf("empty list output = %q", buf.String())
	}

	failed := record(2, "feedback", false)
	failed.ErrorMessage = "rate limited"
	buf.Reset()
	renderCallList(&buf, []store.LLMEventRecord{failed, record(1, "question-gen", true)})

	out := buf.String()
	for _, want := range []string{"generate", "feedback", "failed: rate limited", "gpt-4o-mini", "120"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCall(t *testing.T) {
	e := record(7, "question-gen", true)
	e.RequestBody = "[user]\nGenerate 3 questions"
	e.ResponseBody = `[{"question":"Q","answer":"A"}]`

	var buf bytes.Buffer
	renderCall(&buf, &e)
	out := buf.String()

	for _, want := range []string{
		"Call 7 (generate, single reply)",
		"openai/gpt-4o-mini",
		"session  s1",
		"Generate 3 questions",
		"    \"question\": \"Q\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("call output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "error ") {
		t.Errorf("successful call printed an error line:\n%s", out)
	}

	e.Streamed = true
	e.Success = false
	e.ErrorMessage = "timeout"
	e.ResponseBody = ""
	buf.Reset()
	renderCall(&buf, &e)
	out = buf.String()
	for _, want := range []string{"streamed", "error    timeout", "(not captured)"} {
		if !strings.Contains(out, want) {
			t.Errorf("failed call output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUsage(t *testing.T) {
	byPurpose := []store.PurposeUsage{
		{Purpose: "question-gen", Calls: 4, Failures: 1, InputTokens: 4000, OutputTokens: 1000, AvgLatencyMs: 900},
		{Purpose: "feedback", Calls: 10, InputTokens: 1500, OutputTokens: 800, AvgLatencyMs: 250},
	}
	byModel := []store.ModelUsage{
		{Model: "gpt-4o-mini", Calls: 13, InputTokens: 5000, OutputTokens: 1700},
		{Model: "house-model", Calls: 1, InputTokens: 500, OutputTokens: 100},
	}

	var buf bytes.Buffer
	renderUsage(&buf, byPurpose, byModel)
	out := buf.String()

	for _, want := range []string{"generate", "1 (25%)", "total (partial)", "No pricing for: house-model", "$0.0018"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage output missing %q:\n%s", want, out)
		}
	}
}

func TestFailureRate(t *testing.T) {
	tests := []struct {
		failures, calls int
		want            string
	}{
		{0, 0, "0"},
		{0, 5, "0"},
		{1, 3, "1 (33%)"},
		{2, 2, "2 (100%)"},
	}
	for _, tt := range tests {
		if got := failureRate(tt.failures, tt.calls); got != tt.want {
			t.Errorf("failureRate(%d, %d) = %q, want %q", tt.failures, tt.calls, got, tt.want)
		}
	}
}
