// Local search endpoint client
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// SearchPath is the route prefix of the local search endpoint.
const SearchPath = "/api/movies/search/"

// maxSearchBody caps how much of a search response is read.
const maxSearchBody = 2 << 20

// SearchService queries the local search endpoint.
type SearchService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewSearchService creates a new search client for the endpoint at baseURL.
func NewSearchService(baseURL string, client *http.Client, logger *log.Logger) *SearchService {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &SearchService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		logger:     shared.WithLogger(logger, "service", "search"),
	}
}

// URL returns the request URL for query.
func (s *SearchService) URL(query string) string {
	return s.baseURL + SearchPath + url.PathEscape(query)
}

// Search sends query to the endpoint. A blank query returns no results without a request.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MovieSummary{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search error: status %d", shared.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}
	if len(body) > maxSearchBody {
		return nil, fmt.Errorf("%w: search response exceeds %d bytes", shared.ErrNetwork, maxSearchBody)
	}

	raws, err := decodeSearchBody(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	movies, errs := models.NormalizeAll(raws)
	for _, err := range errs {
		s.logger.Warn("dropping malformed record", "query", query, "error", err)
	}
	return movies, nil
}

// decodeSearchBody accepts a bare array or a {"results": [...]} envelope.
func decodeSearchBody(body []byte) ([]models.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return models.DecodeRawRecords(trimmed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var envelope struct {
		Results []models.RawRecord `json:"results"`
	}
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return envelope.Results, nil
}
