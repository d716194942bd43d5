package quizgen

import "github.com/abhisek/quizgen/internal/llm"

// scalar accepts strings and numbers; numbers are stringified later.
var scalar = map[string]any{"type": []any{"string", "number"}}

// ItemSchema is checked against every entry of the model's JSON array.
// Entries that fail are dropped, not repaired.
var ItemSchema = &llm.Schema{
	Name:        "quiz-item",
	Description: "One multiple-choice quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": scalar,
			"answer":   scalar,
			"options": map[string]any{
				"type":  []any{"array", "null"},
				"items": scalar,
			},
		},
		"required": []any{"question", "answer"},
	},
}
