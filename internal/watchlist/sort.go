package watchlist

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// SortCriterion selects the display order of the watchlist.
type SortCriterion int

const (
	AddedOrder SortCriterion = iota
	ReleaseYear
	Rating
)

// SortCriteria lists every criterion in cycling order.
var SortCriteria = []SortCriterion{AddedOrder, ReleaseYear, Rating}

func (c SortCriterion) String() string {
	switch c {
	case AddedOrder:
		return "added"
	case ReleaseYear:
		return "year"
	case Rating:
		return "rating"
	default:
		return ""
	}
}

// Label is the human readable name shown in the UI.
func (c SortCriterion) Label() string {
	switch c {
	case ReleaseYear:
		return "Release Year"
	case Rating:
		return "Rating"
	default:
		return "Recently Added"
	}
}

// Next returns the criterion after c, wrapping around.
func (c SortCriterion) Next() SortCriterion {
	return SortCriteria[(int(c)+1)%len(SortCriteria)]
}

// ParseSortCriterion maps "added", "year" or "rating" onto a [SortCriterion]. An empty string is
// [AddedOrder].
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "added", "recent":
		return AddedOrder, nil
	case "year", "release", "release_year":
		return ReleaseYear, nil
	case "rating", "vote":
		return Rating, nil
	default:
		return AddedOrder, fmt.Errorf("%w: %q", shared.ErrUnknownSortOrder, s)
	}
}

// ComputeView returns items ordered by c without modifying items.
//
// Release year and rating sort descending and are stable. Missing or unparseable release dates rank as
// the oldest and a missing rating counts as 0.
func ComputeView(items []models.MovieSummary, c SortCriterion) []models.MovieSummary {
	out := make([]models.MovieSummary, len(items))
	copy(out, items)

	switch c {
	case ReleaseYear:
		keys := make(map[int]time.Time, len(out))
		for _, m := range out {
			if t, ok := m.Released(); ok {
				keys[m.ID] = t
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return keys[out[i].ID].After(keys[out[j].ID])
		})
	case Rating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating() > out[j].Rating()
		})
	}
	return out
}
