package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/abhisek/quizgen/internal/quiz"
)

const (
	msgPDFEmpty  = "PDF appears to be empty or text could not be extracted"
	msgPDFFailed = "Error processing PDF"
)

// PDFExtractor concatenates the plain text of every page.
type PDFExtractor struct{}

func (PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = quiz.Wrap(quiz.KindExtractionFailed, fmt.Errorf("pdf parser panic: %v", r), msgPDFFailed)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", quiz.Wrap(quiz.KindExtractionFailed, err, msgPDFFailed)
	}

	var b strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}

		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", quiz.Wrap(quiz.KindExtractionFailed, fmt.Errorf("page %d: %w", i, err), msgPDFFailed)
		}
		b.WriteString(pageText)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", quiz.Errorf(quiz.KindExtractionFailed, msgPDFEmpty)
	}
	return b.String(), nil
}
