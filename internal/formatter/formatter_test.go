package formatter

import (
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	th "github.com/desertthunder/cinex/internal/testing"
)

func sampleExport() *WatchlistExport {
	poster := "/inception.jpg"
	inception := th.Movie(27205, "Inception", "2010-07-15", 8.4)
	inception.PosterPath = &poster

	return &WatchlistExport{
		SortedBy:     "Rating",
		ImageBaseURL: "https://image.tmdb.org/t/p/",
		Items: []models.MovieSummary{
			inception,
			th.Movie(1, "Untitled, Unrated", "", -1),
		},
		ExportedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Title,Year,Release Date,Rating,Poster" {
			t.Errorf("unexpected headers %v", records[0])
		}

		want := []string{"27205", "Inception", "2010", "2010-07-15", "8.4", "https://image.tmdb.org/t/p/w500/inception.jpg"}
		for i, v := range want {
			if records[1][i] != v {
				t.Errorf("column %d = %q, want %q", i, records[1][i], v)
			}
		}
		if records[2][1] != "Untitled, Unrated" || records[2][2] != "N/A" || records[2][4] != "" || records[2][5] != "" {
			t.Errorf("unexpected row for sparse entry: %v", records[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# Watchlist",
			"**Movies**: 2 items",
			"**Sorted by**: Rating",
			"1. **Inception** (2010) ★ 8.4",
			"![Inception](https://image.tmdb.org/t/p/w500/inception.jpg)",
			"2. **Untitled, Unrated** (N/A)\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}

		t.Run("empty", func(t *testing.T) {
			data, _ := ExportToMarkdown(&WatchlistExport{Title: "Later"})
			output := string(data)
			if !strings.Contains(output, "# Later") || !strings.Contains(output, "0 items") {
				t.Errorf("unexpected empty export:\n%s", output)
			}
			if !strings.Contains(output, "empty") {
				t.Error("expected empty state line")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "Watchlist: 2 items\n") {
			t.Errorf("unexpected header: %q", output)
		}
		if !strings.Contains(output, "1. Inception (2010) - 8.4\n") {
			t.Errorf("missing rated line: %q", output)
		}
		if !strings.Contains(output, "2. Untitled, Unrated (N/A)\n") {
			t.Errorf("missing unrated line: %q", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(&WatchlistExport{})
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}

		data, _ = ExportToJSON(sampleExport())
		raws, err := models.DecodeRawRecords(data)
		if err != nil {
			t.Fatalf("JSON export does not decode as records: %v", err)
		}
		movies, errs := models.NormalizeAll(raws)
		if len(errs) != 0 || len(movies) != 2 || movies[0].ID != 27205 {
			t.Errorf("JSON export does not round trip: %+v, %v", movies, errs)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"Markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"text", FormatText},
		{"JSON", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
	if _, err := Export(sampleExport(), Format("xml")); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestPosterURL(t *testing.T) {
	if got := PosterURL("https://img", th.Movie(1, "A", "", -1)); got != "" {
		t.Errorf("expected empty URL without poster, got %q", got)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("WithDefaultPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteExport(sampleExport(), FormatCSV, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "watchlist.csv" {
			t.Errorf("expected default filename, got %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WithCustomPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "later.md")
		got, err := WriteExport(sampleExport(), FormatMarkdown, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if !strings.Contains(th.MustReadFile(t, got), "Inception") {
			t.Error("written file missing content")
		}
	})

	t.Run("UnwritablePath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "out.txt")
		if _, err := WriteExport(sampleExport(), FormatText, path); err == nil {
			t.Error("expected write error")
		}
	})
}
