package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful assistant that creates quiz questions. Always respond with valid JSON only."

// buildUserMessage constructs the generation prompt for the given text and
// question count. text must already be truncated.
func buildUserMessage(text string, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert quiz generator. Create exactly %d multiple-choice questions based on the provided text.\n\n", count)
	b.WriteString("CRITICAL: Respond with ONLY a valid JSON array. No extra text, explanations, or formatting.\n\n")
	b.WriteString(`Required JSON format:
[
    {
        "question": "Clear, specific question text?",
        "answer": "Exact text of correct answer",
        "options": ["Option 1", "Option 2", "Option 3", "Option 4"]
    }
]

Requirements:
- Each question must have exactly 4 options
- The correct answer must be one of the 4 options (exact match)
- Questions should cover different topics from the text
- Use clear, grammatically correct language
- Ensure all JSON is properly formatted with correct quotes and brackets

`)
	b.WriteString("Text to analyze:\n")
	b.WriteString(text)
	fmt.Fprintf(&b, "\n\nGenerate %d questions now:", count)

	return b.String()
}

// truncateRunes keeps at most max runes of s without splitting a
// multi-byte character.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
