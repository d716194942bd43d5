// Package extract turns uploaded documents into plain text for quiz
// generation.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
)

// Extractor pulls plain text out of a document. A document with no
// extractable text is an error.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Registry picks an Extractor by file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry returns a Registry that handles .pdf, .txt and .md files.
func NewRegistry() *Registry {
	text := TextExtractor{}
	return &Registry{byExt: map[string]Extractor{
		".pdf": PDFExtractor{},
		".txt": text,
		".md":  text,
	}}
}

// Supported reports whether a file name has a known extension.
func (r *Registry) Supported(fileName string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// Extract dispatches on the extension of fileName.
func (r *Registry) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		return "", quiz.Errorf(quiz.KindExtractionFailed, "No file provided")
	}
	e, ok := r.byExt[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return "", quiz.Errorf(quiz.KindExtractionFailed, "File must be a PDF")
	}
	return e.Extract(ctx, data)
}
