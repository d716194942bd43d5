// Package api exposes the quiz service over HTTP.
package api

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/extract"
	"github.com/abhisek/quizgen/internal/feedback"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/session"
)

// Header names understood by the API.
const (
	HeaderSessionID = "X-Session-Id"
	HeaderQuizTitle = "Quiz-Title"
)

// Deps are the collaborators a Server needs. All fields are required.
type Deps struct {
	Config    config.Config
	Generator quizgen.Generator
	Sessions  *session.Store
	Feedback  *feedback.Streamer
	Extractor *extract.Registry
	Version   string
}

// Server holds the HTTP handlers for the quiz service.
type Server struct {
	cfg       config.Config
	generator quizgen.Generator
	sessions  *session.Store
	feedback  *feedback.Streamer
	extractor *extract.Registry
	version   string
	validate  *validator.Validate
}

func NewServer(d Deps) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{
		cfg:       d.Config,
		generator: d.Generator,
		sessions:  d.Sessions,
		feedback:  d.Feedback,
		extractor: d.Extractor,
		version:   d.Version,
		validate:  v,
	}
}

// Routes builds the router with middleware and all endpoints mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if s.cfg.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", HeaderSessionID, HeaderQuizTitle},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/pdf", func(pr chi.Router) {
		pr.Post("/extract-text", s.handleExtractText)
	})

	r.Route("/quiz", func(qr chi.Router) {
		qr.Post("/upload-pdf", s.handleUploadPDF)
		qr.Post("/generate", s.handleGenerate)
		qr.Post("/sync", s.handleSync)
		qr.Get("/questions", s.handleListQuestions)
		qr.Put("/questions/{questionID}", s.handleUpdateQuestion)
		qr.Post("/check-answer", s.handleCheckAnswer)
		qr.Post("/check-answer-stream", s.handleCheckAnswerStream)
	})

	return r
}

// sessionID returns the caller's session, or the configured default.
func (s *Server) sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	return s.cfg.DefaultSession
}

// quizTitle picks the first non-blank of the explicit title, the
// Quiz-Title header and the configured default.
func (s *Server) quizTitle(r *http.Request, explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t := strings.TrimSpace(r.Header.Get(HeaderQuizTitle)); t != "" {
		return t
	}
	return s.cfg.DefaultTitle
}
