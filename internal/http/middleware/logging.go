package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"recordshop/internal/logging"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// RequestLogging tags each request with an X-Request-ID and logs its outcome.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), logging.RequestIDKey, requestID)
			r = r.WithContext(ctx)

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			logger := logging.WithContext(ctx)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.Header.Get("User-Agent")).
				Msg("HTTP request started")

			next.ServeHTTP(rw, r)

			logging.HTTPRequest(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
		})
	}
}

// Recovery recovers from panics in downstream handlers and answers 500.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logging.WithContext(r.Context()).Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", err).
						Msg("Recovered from panic")

					w.Header().Set("Connection", "close")
					writeError(w, http.StatusInternalServerError, "InternalError", fmt.Sprintf("%v", err))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Message:   message,
		Status:    status,
		Error:     kind,
		Timestamp: time.Now().UTC(),
	})
}
