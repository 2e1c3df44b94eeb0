// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/cinex/internal/models"
)

// MemoryKV is an in-memory key/value medium satisfying watchlist.Storage.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	sets   int

	GetErr error
	SetErr error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	m.sets++
	return nil
}

// Sets returns how many successful writes were made.
func (m *MemoryKV) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// MockCatalog is a test double for services.Catalog
type MockCatalog struct {
	mu sync.Mutex

	Lists       map[models.Collection][]models.MovieSummary
	ListErrs    map[models.Collection]error
	SearchHits  []models.MovieSummary
	Detail      *models.MovieDetail
	VideoList   []models.Video
	Cast        []models.CastMember
	SimilarList []models.MovieSummary

	SearchErr  error
	DetailErr  error
	VideosErr  error
	CreditsErr error
	SimilarErr error

	Queries []string
}

func (m *MockCatalog) List(ctx context.Context, c models.Collection) ([]models.MovieSummary, error) {
	if err := m.ListErrs[c]; err != nil {
		return nil, err
	}
	return m.Lists[c], nil
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchHits, nil
}

func (m *MockCatalog) Details(ctx context.Context, id int) (*models.MovieDetail, error) {
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	return m.Detail, nil
}

func (m *MockCatalog) Videos(ctx context.Context, id int) ([]models.Video, error) {
	return m.VideoList, m.VideosErr
}

func (m *MockCatalog) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	return m.Cast, m.CreditsErr
}

func (m *MockCatalog) Similar(ctx context.Context, id int) ([]models.MovieSummary, error) {
	return m.SimilarList, m.SimilarErr
}

// Movie builds a [models.MovieSummary] with the given release date and rating; empty date and
// negative rating leave the fields absent.
func Movie(id int, title, date string, rating float64) models.MovieSummary {
	m := models.MovieSummary{ID: id, Title: title}
	if date != "" {
		m.ReleaseDate = &date
	}
	if rating >= 0 {
		m.VoteAverage = &rating
	}
	return m
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
