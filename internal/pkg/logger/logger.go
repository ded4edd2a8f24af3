// Package logger configures the process-wide slog logger with ECS attribute names.
package logger

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v3"
)

const AppName = "worktime-backend"

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a JSON logger writing to w. Outside production the ECS schema is kept verbose.
func New(w io.Writer, level, env, version string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env == "production")

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", version),
		slog.String("env", env),
	)
}

// Setup builds the logger and installs it as slog's default.
func Setup(w io.Writer, level, env, version string) *slog.Logger {
	l := New(w, level, env, version)
	slog.SetDefault(l)
	return l
}

// RequestLogger returns the access log middleware for the HTTP router.
func RequestLogger(l *slog.Logger, level string) func(http.Handler) http.Handler {
	return httplog.RequestLogger(l, &httplog.Options{
		Level:  ParseLevel(level),
		Schema: httplog.SchemaECS,
	})
}
