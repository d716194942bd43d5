package extract

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizgen/internal/quiz"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextExtractor accepts UTF-8 text as is, minus a leading byte order mark.
type TextExtractor struct{}

func (TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", quiz.Errorf(quiz.KindExtractionFailed, "File is not valid UTF-8 text")
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", quiz.Errorf(quiz.KindExtractionFailed, "File appears to be empty")
	}
	return text, nil
}
