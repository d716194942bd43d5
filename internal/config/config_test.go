package config

import (
	"slices"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"QUIZGEN_HTTP_ADDR", "CORS_ORIGINS", "CORS_ORIGINS_DEFAULT", "QUIZGEN_MAX_UPLOAD_BYTES",
		"QUIZGEN_DEFAULT_QUESTIONS", "QUIZGEN_MAX_QUESTIONS", "QUIZGEN_DEFAULT_SESSION",
		"QUIZGEN_DEFAULT_TITLE", "QUIZGEN_REQUEST_TIMEOUT", "QUIZGEN_SHUTDOWN_TIMEOUT", "QUIZGEN_ACCESS_LOG",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DefaultQuestions != 10 || cfg.MaxQuestions != 20 {
		t.Errorf("questions = %d/%d", cfg.DefaultQuestions, cfg.MaxQuestions)
	}
	if cfg.DefaultSession != "default" {
		t.Errorf("DefaultSession = %q", cfg.DefaultSession)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if !cfg.AccessLog {
		t.Error("AccessLog should default to true")
	}
	if !slices.Contains(cfg.CORSOrigins, "http://localhost:3000") {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("QUIZGEN_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CORS_ORIGINS", " https://quiz.example.com , ,https://app.example.com")
	t.Setenv("QUIZGEN_MAX_QUESTIONS", "50")
	t.Setenv("QUIZGEN_REQUEST_TIMEOUT", "2m")
	t.Setenv("QUIZGEN_ACCESS_LOG", "no")

	cfg := FromEnv()

	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if !slices.Contains(cfg.CORSOrigins, "https://quiz.example.com") ||
		!slices.Contains(cfg.CORSOrigins, "https://app.example.com") ||
		!slices.Contains(cfg.CORSOrigins, "http://localhost:3000") {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if slices.Contains(cfg.CORSOrigins, "") {
		t.Error("blank origin kept")
	}
	if cfg.MaxQuestions != 50 {
		t.Errorf("MaxQuestions = %d", cfg.MaxQuestions)
	}
	if cfg.RequestTimeout != 2*time.Minute {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.AccessLog {
		t.Error("AccessLog should be off")
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("QUIZGEN_MAX_QUESTIONS", "lots")
	t.Setenv("QUIZGEN_DEFAULT_QUESTIONS", "-3")
	t.Setenv("QUIZGEN_REQUEST_TIMEOUT", "soon")
	t.Setenv("QUIZGEN_ACCESS_LOG", "maybe")

	cfg := FromEnv()

	if cfg.MaxQuestions != 20 || cfg.DefaultQuestions != 10 {
		t.Errorf("questions = %d/%d", cfg.DefaultQuestions, cfg.MaxQuestions)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if !cfg.AccessLog {
		t.Error("unknown bool should keep the default")
	}
}
