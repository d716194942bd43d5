package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizgen/internal/quiz"
)

const maxJSONBody = 1 << 20

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, kind quiz.Kind, msg string) {
	writeJSON(w, status, errResp{Error: msg, Code: string(kind)})
}

// writeError maps a classified failure to its HTTP status. Only the
// client-safe message leaves the process; the cause is logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var qe *quiz.Error
	if !errors.As(err, &qe) {
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errResp{Error: "Internal server error"})
		return
	}

	status := statusFor(qe.Kind)
	if qe == errFileTooLarge {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= 500 {
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, qe)
	}
	writeErr(w, status, qe.Kind, qe.Message)
}

func statusFor(kind quiz.Kind) int {
	switch kind {
	case quiz.KindExtractionFailed, quiz.KindInvalidAnswer, quiz.KindInvalidRequest:
		return http.StatusBadRequest
	case quiz.KindSessionNotFound, quiz.KindQuestionNotFound:
		return http.StatusNotFound
	case quiz.KindGenerationUnavailable:
		return http.StatusServiceUnavailable
	case quiz.KindGenerationMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst and runs struct validation.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeBody(w, r, dst); err != nil {
		return err
	}
	return s.validateStruct(dst)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return quiz.Wrap(quiz.KindInvalidRequest, err, "Invalid JSON body")
	}
	return nil
}

func (s *Server) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return quiz.Wrap(quiz.KindInvalidRequest, err, "Invalid input")
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describeFieldError(fe))
	}
	return quiz.Errorf(quiz.KindInvalidRequest, "%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
