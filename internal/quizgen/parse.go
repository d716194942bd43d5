package quizgen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

const (
	msgUnparseable = "Failed to process AI response. Please try again."
	msgNoValid     = "Failed to generate valid questions. Please try again."
)

// parseQuestions turns the raw model text into accepted questions. It keeps
// at most count entries, drops entries that cannot be repaired and numbers
// the survivors from 1.
func parseQuestions(content string, count int) ([]quiz.Question, error) {
	body := stripCodeFence(content)

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, quiz.Wrap(quiz.KindGenerationMalformed, err, msgUnparseable)
	}
	if len(entries) == 0 {
		return nil, quiz.Errorf(quiz.KindGenerationMalformed, msgNoValid)
	}
	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}

	questions := make([]quiz.Question, 0, len(entries))
	for _, raw := range entries {
		q, ok := parseEntry(raw)
		if !ok {
			continue
		}
		q.ID = strconv.Itoa(len(questions) + 1)
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, quiz.Errorf(quiz.KindGenerationMalformed, msgNoValid)
	}
	return questions, nil
}

type rawEntry struct {
	Question any   `json:"question"`
	Answer   any   `json:"answer"`
	Options  []any `json:"options"`
}

// parseEntry validates and repairs one entry.
func parseEntry(raw json.RawMessage) (quiz.Question, bool) {
	if err := llm.Validate(ItemSchema, raw); err != nil {
		return quiz.Question{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var e rawEntry
	if err := dec.Decode(&e); err != nil {
		return quiz.Question{}, false
	}

	q := quiz.Question{
		Text:          strings.TrimSpace(stringify(e.Question)),
		CorrectAnswer: strings.TrimSpace(stringify(e.Answer)),
	}
	if q.Text == "" || q.CorrectAnswer == "" {
		return quiz.Question{}, false
	}

	for _, o := range e.Options {
		if opt := strings.TrimSpace(stringify(o)); opt != "" {
			q.Options = append(q.Options, opt)
		}
	}

	if len(q.Options) > 0 {
		answer, ok := matchOption(q.CorrectAnswer, q.Options)
		if !ok {
			return quiz.Question{}, false
		}
		q.CorrectAnswer = answer
	}
	return q, true
}

// matchOption returns the option equal to answer, preferring an exact match
// and falling back to a case-insensitive one.
func matchOption(answer string, options []string) (string, bool) {
	for _, o := range options {
		if o == answer {
			return o, true
		}
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, true
		}
	}
	return "", false
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return ""
	}
}

// stripCodeFence removes a surrounding ``` or ```json fence, which models
// add despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
