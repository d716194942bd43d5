// Package config reads the HTTP service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultCORSOrigins = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:5173"

type Config struct {
	HTTPAddr string

	// CORSOrigins always includes the local dev origins; CORS_ORIGINS adds
	// to them.
	CORSOrigins []string

	MaxUploadBytes int64

	DefaultQuestions int
	MaxQuestions     int

	DefaultSession string
	DefaultTitle   string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	AccessLog bool
}

func FromEnv() Config {
	origins := csvOr("CORS_ORIGINS_DEFAULT", defaultCORSOrigins)
	origins = append(origins, csvOr("CORS_ORIGINS", "")...)

	return Config{
		HTTPAddr:         envOr("QUIZGEN_HTTP_ADDR", ":8000"),
		CORSOrigins:      origins,
		MaxUploadBytes:   int64(envInt("QUIZGEN_MAX_UPLOAD_BYTES", 10<<20)),
		DefaultQuestions: envInt("QUIZGEN_DEFAULT_QUESTIONS", 10),
		MaxQuestions:     envInt("QUIZGEN_MAX_QUESTIONS", 20),
		DefaultSession:   envOr("QUIZGEN_DEFAULT_SESSION", "default"),
		DefaultTitle:     envOr("QUIZGEN_DEFAULT_TITLE", "Generated Quiz"),
		RequestTimeout:   envDuration("QUIZGEN_REQUEST_TIMEOUT", 90*time.Second),
		ShutdownTimeout:  envDuration("QUIZGEN_SHUTDOWN_TIMEOUT", 10*time.Second),
		AccessLog:        envBool("QUIZGEN_ACCESS_LOG", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
