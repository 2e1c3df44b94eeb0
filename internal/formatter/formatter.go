// package formatter provides functions to export watchlist data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// PosterSize is the image size segment used for poster links.
const PosterSize = "w500"

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat maps a flag value onto a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// WatchlistExport is a watchlist snapshot prepared for export.
type WatchlistExport struct {
	Title        string                // Document heading
	SortedBy     string                // Label of the sort order Items are in
	ImageBaseURL string                // Catalog image host, used for poster links
	Items        []models.MovieSummary // Entries in display order
	ExportedAt   time.Time
}

// PosterURL returns the poster link for m, or "" when it has no artwork.
func PosterURL(imageBaseURL string, m models.MovieSummary) string {
	if m.PosterPath == nil {
		return ""
	}
	return shared.ImageURL(imageBaseURL, PosterSize, *m.PosterPath)
}

func (e *WatchlistExport) heading() string {
	if e.Title == "" {
		return "Watchlist"
	}
	return e.Title
}

// ExportToCSV converts a WatchlistExport to CSV format with columns: ID, Title, Year, Release Date, Rating, Poster
func ExportToCSV(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Release Date", "Rating", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range export.Items {
		release := ""
		if m.ReleaseDate != nil {
			release = *m.ReleaseDate
		}
		record := []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.Year(),
			release,
			shared.FormatRating(m.VoteAverage),
			PosterURL(export.ImageBaseURL, m),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a WatchlistExport to Markdown format with poster images
func ExportToMarkdown(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.heading()))
	buf.WriteString(fmt.Sprintf("**Movies**: %s\n", shared.CountLabel(len(export.Items), "item")))
	if export.SortedBy != "" {
		buf.WriteString(fmt.Sprintf("**Sorted by**: %s\n", export.SortedBy))
	}
	if !export.ExportedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Exported**: %s\n", export.ExportedAt.Format(time.RFC1123)))
	}
	buf.WriteString("\n## Movies\n\n")

	if len(export.Items) == 0 {
		buf.WriteString("_Your watchlist is empty._\n")
		return buf.Bytes(), nil
	}

	for i, m := range export.Items {
		ratingPart := ""
		if r := shared.FormatRating(m.VoteAverage); r != "" {
			ratingPart = fmt.Sprintf(" ★ %s", r)
		}
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)%s\n", i+1, m.Title, m.Year(), ratingPart))
		if poster := PosterURL(export.ImageBaseURL, m); poster != "" {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", m.Title, poster))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a WatchlistExport to plain text format
func ExportToText(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s: %s\n", export.heading(), shared.CountLabel(len(export.Items), "item")))
	if export.SortedBy != "" {
		buf.WriteString(fmt.Sprintf("Sorted by: %s\n", export.SortedBy))
	}
	buf.WriteString("\n")

	for i, m := range export.Items {
		line := fmt.Sprintf("%d. %s (%s)", i+1, m.Title, m.Year())
		if r := shared.FormatRating(m.VoteAverage); r != "" {
			line += " - " + r
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the entries in the same shape the watchlist record is stored in.
func ExportToJSON(export *WatchlistExport) ([]byte, error) {
	items := export.Items
	if items == nil {
		items = []models.MovieSummary{}
	}
	return shared.MarshalJSON(items, true)
}

// Export renders export in format f.
func Export(export *WatchlistExport, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, f)
	}
}

// DefaultFilename is the file name used when no output path is given.
func DefaultFilename(f Format) string {
	return "watchlist." + string(f)
}

// WriteExport renders export in format f and writes it to path.
//
// Defaults to watchlist.{ext} in the working directory.
func WriteExport(export *WatchlistExport, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(f)
	}

	data, err := Export(export, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}
