package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/shared"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// SearchHandler serves catalog search results in the movie record shape.
type SearchHandler struct {
	searcher services.Searcher
	logger   *log.Logger
}

// NewSearchHandler creates a handler answering from searcher.
func NewSearchHandler(searcher services.Searcher, logger *log.Logger) *SearchHandler {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &SearchHandler{searcher: searcher, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"GET " + services.SearchPath + "{query}"}
}

// ServeHTTP writes a JSON array of matches for the {query} path value.
//
// Upstream failures answer 502 with an error body.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.PathValue("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("search failed", "query", query, "request_id", RequestIDFrom(r.Context()), "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, shared.ErrServiceUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, "search failed")
		return
	}
	if results == nil {
		results = []models.MovieSummary{}
	}

	writeJSON(w, http.StatusOK, results)
}

// HealthHandler reports liveness.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewSearchRouter wires the search and health handlers with the standard middleware stack.
func NewSearchRouter(searcher services.Searcher, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	r := NewBasicRouter()
	r.Use(RequestID, AccessLog(logger), Recoverer(logger), CORS)
	r.Handler(NewSearchHandler(searcher, logger))
	r.Handler(HealthHandler{})
	return r
}
