package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
)

const systemPrompt = "You are a supportive tutor providing encouraging feedback on quiz answers. Be brief, clear, and motivating."

func buildUserMessage(q quiz.Question, userAnswer string) string {
	var b strings.Builder

	b.WriteString("The user answered a quiz question incorrectly. Provide helpful, encouraging feedback.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "User's Answer: %s\n", userAnswer)
	fmt.Fprintf(&b, "Correct Answer: %s\n\n", q.CorrectAnswer)

	b.WriteString("Provide a brief, encouraging explanation of:\n")
	b.WriteString("1. Why their answer was incorrect\n")
	b.WriteString("2. What the correct answer is and why it's correct\n")
	b.WriteString("3. A helpful tip or insight to remember for the future\n\n")
	b.WriteString("Keep it concise (2-3 sentences max) and encouraging. Be supportive, not critical.")

	return b.String()
}

// fallbackChunk is sent in place of feedback when the upstream call fails.
func fallbackChunk(q quiz.Question, detail string) string {
	return fmt.Sprintf("The correct answer is: %s. %s", q.CorrectAnswer, detail)
}
