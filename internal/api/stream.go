package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
)

// POST /quiz/check-answer-stream
//
// Lookup failures, and writers that cannot flush, are reported as ordinary
// JSON errors. Once the first
// event is written the response is committed and the stream always ends
// normally; feedback failures arrive as a fallback event.
func (s *Server) handleCheckAnswerStream(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sid := s.sessionID(r)
	q, err := s.sessions.Lookup(sid, req.QuestionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !canFlush(w) {
		writeError(w, r, quiz.Errorf(quiz.KindStreamingFailed, "Streaming is not supported by this connection"))
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	ctx := withSession(r, sid)
	for chunk := range s.feedback.Stream(ctx, q, req.UserAnswer) {
		if err := writeEvent(w, chunk); err != nil {
			// Client went away; leaving the loop closes the upstream call.
			return
		}
		_ = rc.Flush()
	}
}

// canFlush reports whether w, or a writer it wraps, can flush. This is the
// same unwrapping http.ResponseController does.
func canFlush(w http.ResponseWriter) bool {
	for {
		switch t := w.(type) {
		case http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = t.Unwrap()
		default:
			return false
		}
	}
}

// writeEvent writes one server-sent event. Multi-line chunks become
// multiple data lines of the same event.
func writeEvent(w io.Writer, data string) error {
	var b strings.Builder
	for line := range strings.SplitSeq(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
