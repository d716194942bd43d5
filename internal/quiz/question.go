// Package quiz holds the question record model, the shared answer
// evaluator and the error taxonomy used across the quiz service.
package quiz

import (
	"slices"
	"strconv"
	"strings"
)

// Question is a validated quiz item.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question" validate:"required"`
	CorrectAnswer string   `json:"answer" validate:"required"`
	Options       []string `json:"options"`
}

// Validate enforces the record invariants without repairing anything:
// text and answer must be non-blank, and a non-empty option list must
// contain the answer exactly.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return Errorf(KindInvalidRequest, "question text is required")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return Errorf(KindInvalidAnswer, "correct answer is required")
	}
	if len(q.Options) > 0 && !slices.Contains(q.Options, q.CorrectAnswer) {
		return Errorf(KindInvalidAnswer, "correct answer must be one of the options")
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias stored option slices.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// SortByID orders questions by numeric id, falling back to string order
// for ids that are not numbers.
func SortByID(qs []Question) {
	slices.SortStableFunc(qs, func(a, b Question) int {
		ai, aerr := strconv.Atoi(a.ID)
		bi, berr := strconv.Atoi(b.ID)
		switch {
		case aerr == nil && berr == nil:
			return ai - bi
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
