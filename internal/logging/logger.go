package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

// RequestIDKey is the context key for request IDs.
const RequestIDKey contextKey = "request_id"

// Logger wraps zerolog for application logging.
type Logger struct {
	logger zerolog.Logger
	file   *lumberjack.Logger
}

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
	// File, when set, receives a copy of every entry with size-based rotation.
	File string
}

// New creates a logger with the given configuration.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	l := &Logger{}
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(output, l.file)
	}

	l.logger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return l
}

// SetGlobalLogger installs the logger as the zerolog global.
func SetGlobalLogger(logger *Logger) {
	log.Logger = logger.logger
}

// Close flushes and closes the rotating log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Info logs an info message using the global logger.
func Info(msg string) {
	log.Info().Msg(msg)
}

// Warn logs a warning message using the global logger.
func Warn(msg string) {
	log.Warn().Msg(msg)
}

// Error logs an error message using the global logger.
func Error(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}

// WithContext returns the global logger annotated with the request ID in ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	logger := log.With()
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.Str("request_id", requestID)
	}
	contextLogger := logger.Logger()
	return &contextLogger
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// DBQuery logs database query details.
func DBQuery(query string, duration time.Duration, err error) {
	event := log.Debug()
	if err != nil {
		event = log.Error()
	}

	event.
		Str("query", query).
		Dur("duration_ms", duration).
		Err(err).
		Msg("Database query")
}

// HTTPRequest logs a completed request, at warn level for 4xx and error
// level for 5xx responses.
func HTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	logger := WithContext(ctx)
	event := logger.Info()
	if status >= 500 {
		event = logger.Error()
	} else if status >= 400 {
		event = logger.Warn()
	}

	event.
		Str("method", method).
		Str("path", path).
		Int("status_code", status).
		Dur("duration_ms", duration).
		Msg("HTTP request completed")
}
