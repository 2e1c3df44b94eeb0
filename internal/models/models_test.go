package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/cinex/internal/shared"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		raws, err := DecodeRawRecords([]byte(`[{"id": 603, "title": "The Matrix", "poster_path": "/m.jpg",
			"release_date": "1999-03-31", "vote_average": 8.2, "overview": "ignored"}]`))
		if err != nil {
			t.Fatalf("DecodeRawRecords failed: %v", err)
		}

		m, err := Normalize(raws[0])
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if m.ID != 603 || m.Title != "The Matrix" {
			t.Errorf("unexpected identity: %+v", m)
		}
		if m.PosterPath == nil || *m.PosterPath != "/m.jpg" {
			t.Errorf("expected poster path, got %v", m.PosterPath)
		}
		if m.ReleaseDate == nil || *m.ReleaseDate != "1999-03-31" {
			t.Errorf("expected release date, got %v", m.ReleaseDate)
		}
		if m.VoteAverage == nil || *m.VoteAverage != 8.2 {
			t.Errorf("expected vote average 8.2, got %v", m.VoteAverage)
		}
	})

	t.Run("optional fields absent", func(t *testing.T) {
		m, err := Normalize(RawRecord{"id": 1.0, "title": "A", "poster_path": "", "release_date": nil})
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if m.PosterPath != nil || m.ReleaseDate != nil || m.VoteAverage != nil {
			t.Errorf("expected optional fields to be absent, got %+v", m)
		}
	})

	tests := []struct {
		name string
		raw  RawRecord
	}{
		{"nil record", nil},
		{"missing id", RawRecord{"title": "A"}},
		{"string id", RawRecord{"id": "12", "title": "A"}},
		{"fractional id", RawRecord{"id": 1.5, "title": "A"}},
		{"missing title", RawRecord{"id": 1.0}},
		{"blank title", RawRecord{"id": 1.0, "title": "  "}},
		{"non-string title", RawRecord{"id": 1.0, "title": 42.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}

	t.Run("vote average bounds", func(t *testing.T) {
		for _, v := range []any{-1.0, 10.5, "7.0"} {
			m, err := Normalize(RawRecord{"id": 1.0, "title": "A", "vote_average": v})
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if m.VoteAverage != nil {
				t.Errorf("vote_average %v: expected absent, got %v", v, *m.VoteAverage)
			}
		}
		m, _ := Normalize(RawRecord{"id": 1.0, "title": "A", "vote_average": 10.0})
		if m.VoteAverage == nil || *m.VoteAverage != 10 {
			t.Errorf("expected boundary 10 to be kept, got %v", m.VoteAverage)
		}
	})
}

func TestNormalizeAll(t *testing.T) {
	raws := []RawRecord{
		{"id": 1.0, "title": "First"},
		{"id": 2.0},
		{"id": 3.0, "title": "Third"},
	}

	movies, errs := NormalizeAll(raws)
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ID != 1 || movies[1].ID != 3 {
		t.Errorf("expected input order to be kept, got %+v", movies)
	}
	if len(errs) != 1 || !IsMalformed(errs[0]) {
		t.Errorf("expected one malformed error, got %v", errs)
	}
}

func TestDecodeRawRecord(t *testing.T) {
	if _, err := DecodeRawRecord([]byte(`null`)); !errors.Is(err, shared.ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord for null, got %v", err)
	}
	if _, err := DecodeRawRecord([]byte(`{`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	raw, err := DecodeRawRecord([]byte(`{"id": 7, "title": "Seven"}`))
	if err != nil {
		t.Fatalf("DecodeRawRecord failed: %v", err)
	}
	if m, err := Normalize(raw); err != nil || m.ID != 7 {
		t.Errorf("unexpected result %+v, %v", m, err)
	}
}

func TestMovieSummary(t *testing.T) {
	t.Run("year", func(t *testing.T) {
		tests := []struct {
			date *string
			want string
		}{
			{ptr("2010-07-16"), "2010"},
			{ptr("1999"), "1999"},
			{ptr("soon"), "N/A"},
			{nil, "N/A"},
		}
		for _, tt := range tests {
			m := MovieSummary{ID: 1, Title: "A", ReleaseDate: tt.date}
			if got := m.Year(); got != tt.want {
				t.Errorf("Year() = %q, want %q", got, tt.want)
			}
		}
	})

	t.Run("rating", func(t *testing.T) {
		if got := (MovieSummary{}).Rating(); got != 0 {
			t.Errorf("expected absent rating to be 0, got %v", got)
		}
		if got := (MovieSummary{VoteAverage: ptr(6.5)}).Rating(); got != 6.5 {
			t.Errorf("expected 6.5, got %v", got)
		}
	})

	t.Run("string", func(t *testing.T) {
		m := MovieSummary{Title: "Inception", ReleaseDate: ptr("2010-07-16")}
		if got := m.String(); got != "Inception (2010)" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestFindTrailer(t *testing.T) {
	videos := []Video{
		{Key: "a", Site: "Vimeo", Type: "Trailer"},
		{Key: "b", Site: "YouTube", Type: "Teaser"},
		{Key: "c", Site: "YouTube", Type: "Trailer"},
		{Key: "d", Site: "YouTube", Type: "Trailer"},
	}

	tr := FindTrailer(videos)
	if tr == nil || tr.Key != "c" {
		t.Fatalf("expected trailer c, got %+v", tr)
	}
	if got := tr.WatchURL(); got != "https://www.youtube.com/watch?v=c" {
		t.Errorf("WatchURL() = %q", got)
	}
	if FindTrailer(videos[:2]) != nil {
		t.Error("expected no trailer")
	}
	if got := videos[0].WatchURL(); got != "" {
		t.Errorf("expected empty URL for non-YouTube video, got %q", got)
	}
}

func TestMovieDetailGenreNames(t *testing.T) {
	d := MovieDetail{Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}}
	names := d.GenreNames()
	if len(names) != 2 || names[0] != "Action" || names[1] != "Science Fiction" {
		t.Errorf("unexpected genre names: %v", names)
	}
}
