package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"recordshop/internal/app/records"
	"recordshop/internal/logging"
	"recordshop/internal/store"
)

// BasePath prefixes every record endpoint.
const BasePath = "/api/v1/record-shop"

const maxBodyBytes = 1 << 20

// RecordService exposes the record catalogue workflows.
type RecordService interface {
	Create(ctx context.Context, payload *records.Patch) (store.Album, error)
	ReplaceOrCreate(ctx context.Context, payload *records.Patch, id *int64) (store.Album, bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Album, error)
	Get(ctx context.Context, id int64) (store.Album, error)
	ByArtist(ctx context.Context, artist string) ([]store.Album, error)
	ByReleaseYear(ctx context.Context, year int) ([]store.Album, error)
	ByGenre(ctx context.Context, genre store.Genre) ([]store.Album, error)
	ByName(ctx context.Context, name string) ([]store.Album, error)
	Search(ctx context.Context, params map[string]string) ([]store.Album, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// Server wires HTTP handlers to the record service.
type Server struct {
	records RecordService
	health  HealthChecker
	now     func() time.Time
}

// New configures a Server with the given RecordService. health may be nil,
// in which case /health always answers OK.
func New(records RecordService, health HealthChecker) *Server {
	return &Server{records: records, health: health, now: time.Now}
}

// Routes exposes the HTTP handlers for the record catalogue.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix(BasePath).Subrouter()
	api.NotFoundHandler = router.NotFoundHandler
	api.MethodNotAllowedHandler = router.MethodNotAllowedHandler

	api.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records", s.handleCreateRecord).Methods(http.MethodPost)

	// "/records/" is the id-less form of the item endpoints.
	for _, path := range []string{"/records/{id}", "/records/"} {
		api.HandleFunc(path, s.handleGetRecord).Methods(http.MethodGet)
		api.HandleFunc(path, s.handlePutRecord).Methods(http.MethodPut)
		api.HandleFunc(path, s.handleDeleteRecord).Methods(http.MethodDelete)
	}

	return router
}

type errorResponse struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// writeError maps err to a status code and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	kind := "InternalError"
	switch {
	case records.IsInvalidInput(err):
		status, kind = http.StatusBadRequest, records.ErrInvalidInput.Error()
	case records.IsNotFound(err):
		status, kind = http.StatusNotFound, records.ErrNotFound.Error()
	default:
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	s.writeErrorBody(w, status, kind, err.Error())
}

func (s *Server) writeErrorBody(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{
		Message:   message,
		Status:    status,
		Error:     kind,
		Timestamp: s.now().UTC(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := s.health.Ping(ctx); err != nil {
			logging.Error(err, "health check failed")
			s.writeErrorBody(w, http.StatusServiceUnavailable, "Unavailable", "record store is not reachable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeErrorBody(w, http.StatusNotFound, records.ErrNotFound.Error(),
		fmt.Sprintf("No endpoint %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeErrorBody(w, http.StatusMethodNotAllowed, "MethodNotAllowed",
		fmt.Sprintf("The %s method is not supported for this resource", r.Method))
}

func badRequest(format string, args ...any) error {
	return &records.Error{Kind: records.ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// decodePatch reads an optional album payload. An empty body yields nil.
func decodePatch(w http.ResponseWriter, r *http.Request) (*records.Patch, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var payload records.Patch
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if errors.Is(err, store.ErrInvalidGenre) {
			return nil, badRequest("%v", err)
		}
		return nil, badRequest("invalid JSON payload: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, badRequest("body must only contain a single JSON value")
	}
	return &payload, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
