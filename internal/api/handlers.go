package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/quizgen"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz Generator API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// POST /pdf/extract-text
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	text, err := s.extractor.Extract(r.Context(), name, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Success:       true,
		TextExtracted: text,
		FileName:      name,
		FileSize:      len(data),
	})
}

// POST /quiz/upload-pdf
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, err := s.resolveCount(r.FormValue("count"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	text, err := s.extractor.Extract(r.Context(), name, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.generateAndStore(w, r, text, count, r.FormValue("title"))
}

// POST /quiz/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeErr(w, http.StatusBadRequest, quiz.KindInvalidRequest, "text is required")
		return
	}

	count, err := s.checkCount(req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.generateAndStore(w, r, req.Text, count, req.Title)
}

func (s *Server) generateAndStore(w http.ResponseWriter, r *http.Request, text string, count int, title string) {
	sid := s.sessionID(r)
	ctx := withSession(r, sid)

	questions, err := s.generator.Generate(ctx, quizgen.GenerateInput{Text: text, Count: count})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeError(w, r, err)
		return
	}

	snap := s.sessions.Replace(sid, s.quizTitle(r, title), questions)
	writeJSON(w, http.StatusOK, quizResponse{QuizTitle: snap.Title, Questions: snap.Questions})
}

// POST /quiz/sync replaces the session with client-held questions. Every
// record is checked strictly and ids must be unique.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	seen := make(map[string]bool, len(req.Questions))
	for _, q := range req.Questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			writeErr(w, http.StatusBadRequest, quiz.KindInvalidRequest, "every question needs an id")
			return
		}
		if seen[id] {
			writeErr(w, http.StatusBadRequest, quiz.KindInvalidRequest, "duplicate question id "+strconv.Quote(id))
			return
		}
		seen[id] = true
		if err := q.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
	}

	snap := s.sessions.Replace(s.sessionID(r), s.quizTitle(r, req.Title), req.Questions)
	writeJSON(w, http.StatusOK, quizResponse{QuizTitle: snap.Title, Questions: snap.Questions})
}

// GET /quiz/questions
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.sessions.Snapshot(s.sessionID(r))
	if !ok {
		writeErr(w, http.StatusNotFound, quiz.KindSessionNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{QuizTitle: snap.Title, Questions: snap.Questions})
}

// PUT /quiz/questions/{questionID}
func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	// Record checks happen in the store so blank answers get their own kind.
	var q quiz.Question
	if err := decodeBody(w, r, &q); err != nil {
		writeError(w, r, err)
		return
	}
	if q.ID != questionID {
		writeErr(w, http.StatusBadRequest, quiz.KindInvalidRequest, "Question ID in URL must match ID in request body")
		return
	}

	updated, err := s.sessions.Update(s.sessionID(r), questionID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// POST /quiz/check-answer
func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := s.sessions.Lookup(s.sessionID(r), req.QuestionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz.Evaluate(q, req.UserAnswer))
}

func withSession(r *http.Request, sid string) context.Context {
	return llm.WithSession(r.Context(), sid)
}

// readUpload returns the multipart "file" field, enforcing the size limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := s.cfg.MaxUploadBytes
	// Leave room for the multipart envelope and small form fields.
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)

	f, hdr, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", nil, errFileTooLarge
		}
		return "", nil, quiz.Wrap(quiz.KindInvalidRequest, err, "No file provided")
	}
	defer f.Close()

	if !s.extractor.Supported(hdr.Filename) {
		return "", nil, quiz.Errorf(quiz.KindExtractionFailed, "File must be a PDF")
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", nil, quiz.Wrap(quiz.KindExtractionFailed, err, "Could not read uploaded file")
	}
	if int64(len(data)) > limit {
		return "", nil, errFileTooLarge
	}
	return hdr.Filename, data, nil
}

var errFileTooLarge = quiz.Errorf(quiz.KindInvalidRequest, "File is too large")

// resolveCount parses an optional form value.
func (s *Server) resolveCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.cfg.DefaultQuestions, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, quiz.Errorf(quiz.KindInvalidRequest, "count must be a positive integer")
	}
	return s.checkCount(n)
}

func (s *Server) checkCount(n int) (int, error) {
	if n == 0 {
		return s.cfg.DefaultQuestions, nil
	}
	if n > s.cfg.MaxQuestions {
		return 0, quiz.Errorf(quiz.KindInvalidRequest, "count must be at most %d", s.cfg.MaxQuestions)
	}
	return n, nil
}
