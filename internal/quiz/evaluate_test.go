package quiz

import "testing"

func paris() Question {
	return Question{
		ID:            "1",
		Text:          "What is the capital of France?",
		CorrectAnswer: "Paris",
		Options:       []string{"Paris", "Lyon", "Nice", "Caen"},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		answer  string
		correct bool
	}{
		{"exact", paris(), "Paris", true},
		{"case-insensitive", paris(), "paris", true},
		{"surrounding whitespace", paris(), "  PARIS \n", true},
		{"wrong option", paris(), "Lyon", false},
		{"not an option", paris(), "Berlin", false},
		{"empty", paris(), "", false},
		{"blank", paris(), "   ", false},
		{"index is not an answer", paris(), "1", false},
		{"free text question", Question{ID: "2", Text: "2+2?", CorrectAnswer: "4"}, " 4 ", true},
		{"padded stored answer is not trimmed", Question{ID: "3", Text: "Q", CorrectAnswer: "Paris ", Options: []string{"Paris ", "Lyon"}}, "Paris", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.q, tt.answer)
			if ev.Correct != tt.correct {
				t.Fatalf("Evaluate(%q).Correct = %v, want %v", tt.answer, ev.Correct, tt.correct)
			}
			if ev.CorrectAnswer != tt.q.CorrectAnswer {
				t.Fatalf("CorrectAnswer = %q, want %q", ev.CorrectAnswer, tt.q.CorrectAnswer)
			}
		})
	}
}

func TestEvaluate_Explanations(t *testing.T) {
	if got := Evaluate(paris(), "paris").Explanation; got != "Correct! Well done!" {
		t.Fatalf("correct explanation = %q", got)
	}
	if got := Evaluate(paris(), "Rome").Explanation; got != "The correct answer is: Paris" {
		t.Fatalf("incorrect explanation = %q", got)
	}
}

func TestEvaluate_OptionMatchRequiresCorrectOption(t *testing.T) {
	// The stored answer disagrees with every option; matching an option must
	// not be enough on its own.
	q := Question{ID: "1", Text: "Q", CorrectAnswer: "Paris", Options: []string{"Lyon", "Nice"}}
	if Evaluate(q, "lyon").Correct {
		t.Fatal("matching a non-correct option must not be accepted")
	}
}
