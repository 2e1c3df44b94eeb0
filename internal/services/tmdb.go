// TMDB API implementation of [Catalog]
//
// Response shapes based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

type tmdbList struct {
	Page         int                `json:"page"`
	Results      []models.RawRecord `json:"results"`
	TotalPages   int                `json:"total_pages"`
	TotalResults int                `json:"total_results"`
}

type tmdbVideos struct {
	ID      int            `json:"id"`
	Results []models.Video `json:"results"`
}

type tmdbCredits struct {
	ID   int                 `json:"id"`
	Cast []models.CastMember `json:"cast"`
}

// tmdbDetailExtras holds the detail fields that are not part of [models.MovieSummary].
type tmdbDetailExtras struct {
	Runtime      *int           `json:"runtime"`
	Genres       []models.Genre `json:"genres"`
	Overview     string         `json:"overview"`
	Tagline      string         `json:"tagline"`
	BackdropPath *string        `json:"backdrop_path"`
}

// TMDBService implements [Catalog] for The Movie Database.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewTMDBService creates a catalog client from cfg.
//
// client may be nil. When cfg.ReadToken is set, requests are authorized with it as a bearer token.
func NewTMDBService(cfg shared.CatalogConfig, client *http.Client, logger *log.Logger) *TMDBService {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	if cfg.ReadToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ReadToken, TokenType: "Bearer"})
		authed := oauth2.NewClient(ctx, ts)
		authed.Timeout = client.Timeout
		client = authed
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 4
	}
	burst := int(math.Ceil(limit))

	return &TMDBService{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(limit), burst),
		logger:     shared.WithLogger(logger, "service", "tmdb"),
	}
}

// Name returns the catalog's display name.
func (s *TMDBService) Name() string {
	return "TMDB"
}

// doRequest performs a GET against the catalog and decodes the JSON body into result.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	if s.language != "" {
		params.Set("language", s.language)
	}

	apiURL := s.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		apiURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w: %s", shared.ErrNetwork, shared.ErrMovieNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: tmdb API error: status %d", shared.ErrNetwork, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrNetwork, err)
	}
	return nil
}

// normalize maps raw results onto summaries, logging and dropping malformed ones.
func (s *TMDBService) normalize(source string, raws []models.RawRecord) []models.MovieSummary {
	movies, errs := models.NormalizeAll(raws)
	for _, err := range errs {
		s.logger.Warn("dropping malformed record", "source", source, "error", err)
	}
	return movies
}

func (s *TMDBService) list(ctx context.Context, source, endpoint string, params url.Values) ([]models.MovieSummary, error) {
	var response tmdbList
	if err := s.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return s.normalize(source, response.Results), nil
}

// List fetches the first page of a curated collection.
func (s *TMDBService) List(ctx context.Context, c models.Collection) ([]models.MovieSummary, error) {
	if _, ok := models.ParseCollection(string(c)); !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", shared.ErrInvalidArgument, c)
	}
	return s.list(ctx, string(c), "/movie/"+string(c), nil)
}

// Search finds movies matching query. A blank query returns no results without a request.
func (s *TMDBService) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MovieSummary{}, nil
	}
	params := url.Values{}
	params.Set("query", query)
	return s.list(ctx, "search", "/search/movie", params)
}

// Details fetches the detail record for id.
func (s *TMDBService) Details(ctx context.Context, id int) (*models.MovieDetail, error) {
	var raw models.RawRecord
	if err := s.doRequest(ctx, movieEndpoint(id, ""), nil, &raw); err != nil {
		return nil, err
	}

	summary, err := models.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}

	// re-decode the extras from the already parsed record
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	var extras tmdbDetailExtras
	if err := json.Unmarshal(data, &extras); err != nil {
		return nil, fmt.Errorf("%w: failed to decode movie details: %v", shared.ErrNetwork, err)
	}

	detail := &models.MovieDetail{
		MovieSummary: summary,
		Runtime:      extras.Runtime,
		Genres:       extras.Genres,
		Overview:     extras.Overview,
		Tagline:      extras.Tagline,
		BackdropPath: extras.BackdropPath,
	}
	if detail.BackdropPath != nil && *detail.BackdropPath == "" {
		detail.BackdropPath = nil
	}
	return detail, nil
}

// Videos fetches the videos attached to id.
func (s *TMDBService) Videos(ctx context.Context, id int) ([]models.Video, error) {
	var response tmdbVideos
	if err := s.doRequest(ctx, movieEndpoint(id, "videos"), nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Credits fetches the cast of id.
func (s *TMDBService) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	var response tmdbCredits
	if err := s.doRequest(ctx, movieEndpoint(id, "credits"), nil, &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// Similar fetches movies related to id.
func (s *TMDBService) Similar(ctx context.Context, id int) ([]models.MovieSummary, error) {
	return s.list(ctx, "similar", movieEndpoint(id, "similar"), nil)
}

func movieEndpoint(id int, sub string) string {
	endpoint := "/movie/" + strconv.Itoa(id)
	if sub != "" {
		endpoint += "/" + sub
	}
	return endpoint
}
