package tasks

import (
	"fmt"

	"github.com/desertthunder/cinex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSlider Phase = iota
	FetchDetail
	FetchVideos
	FetchCredits
	FetchSimilar
	SearchMovies
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchSlider:
		return "fetch_slider"
	case FetchDetail:
		return "fetch_detail"
	case FetchVideos:
		return "fetch_videos"
	case FetchCredits:
		return "fetch_credits"
	case FetchSimilar:
		return "fetch_similar"
	case SearchMovies:
		return "search_movies"
	case WriteExport:
		return "export_watchlist"
	default:
		return ""
	}
}

func sliderUpdate(step, total int, section HomeSection) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] %s: %d movies", step, total, section.Title, len(section.Movies))
	if section.Err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, section.Title, section.Err)
	}
	return ProgressUpdate{
		Phase:   FetchSlider,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    section,
	}
}

func detailStepUpdate(phase Phase, step, total, id int) ProgressUpdate {
	var what string
	switch phase {
	case FetchVideos:
		what = "videos"
	case FetchCredits:
		what = "cast"
	case FetchSimilar:
		what = "similar movies"
	default:
		what = "details"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetched %s for movie %d", step, total, what, id),
	}
}

func searchUpdate(query string, results []models.MovieSummary) ProgressUpdate {
	if results == nil {
		return ProgressUpdate{
			Phase:   SearchMovies,
			Step:    0,
			Total:   1,
			Message: fmt.Sprintf("Searching for %q...", query),
		}
	}
	return ProgressUpdate{
		Phase:   SearchMovies,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d results for %q", len(results), query),
		Data:    results,
	}
}

func exportCompletedUpdate(step, total int, format, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, format, path),
	}
}

func exportFailedUpdate(step, total int, format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, format, err),
	}
}
