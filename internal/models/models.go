// package models defines the data model for the movie discovery app
package models

import (
	"fmt"
	"strconv"
	"time"
)

const releaseDateLayout = "2006-01-02"

// MovieSummary is the minimal movie shape kept in the watchlist.
//
// Optional fields are nil when the source record did not carry them.
type MovieSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
}

// Released parses ReleaseDate; ok is false when it is absent or malformed.
func (m MovieSummary) Released() (time.Time, bool) {
	if m.ReleaseDate == nil {
		return time.Time{}, false
	}
	return ParseReleaseDate(*m.ReleaseDate)
}

// Year returns the release year or "N/A".
func (m MovieSummary) Year() string {
	if t, ok := m.Released(); ok {
		return strconv.Itoa(t.Year())
	}
	return "N/A"
}

// Rating returns VoteAverage, or 0 when absent.
func (m MovieSummary) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

func (m MovieSummary) String() string {
	return fmt.Sprintf("%s (%s)", m.Title, m.Year())
}

// ParseReleaseDate accepts "YYYY-MM-DD" and a bare "YYYY".
func ParseReleaseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(releaseDateLayout, s); err == nil {
		return t, true
	}
	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil && y > 0 {
			return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the detail page record.
type MovieDetail struct {
	MovieSummary
	Runtime      *int    `json:"runtime,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	Tagline      string  `json:"tagline,omitempty"`
	BackdropPath *string `json:"backdrop_path,omitempty"`
}

// GenreNames flattens Genres for display.
func (d MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CastMember is one entry of a movie's credits.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profile_path,omitempty"`
}

// Video is a catalog video attached to a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// WatchURL links to the video when it is hosted on YouTube.
func (v Video) WatchURL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// FindTrailer returns the first YouTube trailer, or nil.
func FindTrailer(videos []Video) *Video {
	for i := range videos {
		if videos[i].Type == "Trailer" && videos[i].Site == "YouTube" {
			return &videos[i]
		}
	}
	return nil
}

// Collection names a curated catalog list.
type Collection string

const (
	NowPlaying Collection = "now_playing"
	Upcoming   Collection = "upcoming"
	Popular    Collection = "popular"
)

// Collections lists the curated lists in display order.
var Collections = []Collection{NowPlaying, Upcoming, Popular}

// Title is the slider heading for c.
func (c Collection) Title() string {
	switch c {
	case NowPlaying:
		return "Now Playing"
	case Upcoming:
		return "Upcoming Movies"
	case Popular:
		return "Popular Picks"
	default:
		return string(c)
	}
}

// Badge is the short tag shown on every card of c, if any.
func (c Collection) Badge() string {
	switch c {
	case NowPlaying:
		return "NEW"
	case Popular:
		return "TOP"
	default:
		return ""
	}
}

// ParseCollection accepts a collection name.
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
