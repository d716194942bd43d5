package quiz

import "strings"

// Explanation strings returned by Evaluate.
const (
	CorrectExplanation = "Correct! Well done!"
	incorrectPrefix    = "The correct answer is: "
)

// Evaluation is the verdict for one submitted answer.
type Evaluation struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Evaluate checks userAnswer against q. Comparison ignores case and trims
// the user's answer only; stored text is compared as is. A second check matches the answer against the options,
// which only succeeds when the matched option is itself the correct answer.
func Evaluate(q Question, userAnswer string) Evaluation {
	ev := Evaluation{CorrectAnswer: q.CorrectAnswer}
	if IsCorrect(q, userAnswer) {
		ev.Correct = true
		ev.Explanation = CorrectExplanation
		return ev
	}
	ev.Explanation = incorrectPrefix + q.CorrectAnswer
	return ev
}

// IsCorrect reports whether userAnswer is correct for q.
func IsCorrect(q Question, userAnswer string) bool {
	answer := strings.TrimSpace(userAnswer)
	if answer == "" {
		return false
	}
	if strings.EqualFold(answer, q.CorrectAnswer) {
		return true
	}
	for _, opt := range q.Options {
		if strings.EqualFold(answer, opt) && strings.EqualFold(opt, q.CorrectAnswer) {
			return true
		}
	}
	return false
}
