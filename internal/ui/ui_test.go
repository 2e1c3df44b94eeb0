package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/tasks"
	tu "github.com/desertthunder/cinex/internal/testing"
	"github.com/desertthunder/cinex/internal/watchlist"
)

type fakeBrowser struct {
	home    *tasks.HomePage
	details map[int]*tasks.DetailPage
	search  []models.MovieSummary
	err     error
}

func (f *fakeBrowser) Home(ctx context.Context, progress chan<- tasks.ProgressUpdate) *tasks.HomePage {
	if progress != nil {
		progress <- tasks.ProgressUpdate{Phase: tasks.FetchSlider, Step: 1, Total: 1, Message: "loaded"}
	}
	return f.home
}

func (f *fakeBrowser) Detail(ctx context.Context, progress chan<- tasks.ProgressUpdate, id int) (*tasks.DetailPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details[id], nil
}

func (f *fakeBrowser) Search(ctx context.Context, progress chan<- tasks.ProgressUpdate, query string) ([]models.MovieSummary, error) {
	return f.search, f.err
}

func newTestModel(t *testing.T, b *fakeBrowser) (*Model, *watchlist.Store) {
	t.Helper()
	store := watchlist.NewStore(watchlist.NewDurableStore(tu.NewMemoryKV(), "wl"), nil)
	if err := store.Hydrate(); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	m := NewModel(context.Background(), b, store, Options{
		ImageBaseURL: "https://image.tmdb.org/t/p",
		RemovalDelay: 10 * time.Millisecond,
		OpenURL:      func(string) error { return nil },
	})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store
}

func homePage() *tasks.HomePage {
	return &tasks.HomePage{Sections: []tasks.HomeSection{
		{Collection: models.NowPlaying, Title: "Now Playing", Badge: "NEW", Movies: []models.MovieSummary{
			tu.Movie(1, "Alpha", "2020-01-01", 7.0),
			tu.Movie(2, "Beta", "2021-01-01", 8.0),
		}},
		{Collection: models.Upcoming, Title: "Upcoming Movies", Err: errors.New("boom")},
		{Collection: models.Popular, Title: "Popular Picks", Badge: "TOP", Movies: []models.MovieSummary{
			tu.Movie(3, "Gamma", "2019-01-01", 9.0),
		}},
	}}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds its messages back into the model until none remain.
func drain(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func TestModel(t *testing.T) {
	t.Run("loads sliders on init", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{home: homePage()})
		drain(m, m.Init())

		if m.homeLoading {
			t.Fatal("expected loading to finish")
		}
		if got := len(m.homeList.Items()); got != 2 {
			t.Errorf("expected 2 items in first slider, got %d", got)
		}
		if !strings.Contains(m.View(), "Now Playing") {
			t.Error("expected slider title in view")
		}
	})

	t.Run("tab cycles sections and shows contained failures", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{home: homePage()})
		drain(m, m.Init())

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.section != 1 {
			t.Fatalf("expected section 1, got %d", m.section)
		}
		if !strings.Contains(m.View(), "Could not load Upcoming Movies") {
			t.Error("expected failure notice for failed slider")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.section != 0 {
			t.Errorf("expected wrap to section 0, got %d", m.section)
		}
	})

	t.Run("toggle from slider marks the card", func(t *testing.T) {
		m, store := newTestModel(t, &fakeBrowser{home: homePage()})
		drain(m, m.Init())

		m.Update(keyRunes("a"))
		if !store.Contains(1) {
			t.Fatal("expected movie 1 in watchlist")
		}
		item := m.homeList.Items()[0].(movieItem)
		if !item.inWatchlist {
			t.Error("expected card to be marked")
		}

		m.Update(keyRunes("a"))
		if store.Contains(1) {
			t.Error("expected second toggle to remove")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("submits query and shows results tab", func(t *testing.T) {
		b := &fakeBrowser{home: homePage(), search: []models.MovieSummary{tu.Movie(9, "Dune", "2021-10-22", 8.0)}}
		m, _ := newTestModel(t, b)
		drain(m, m.Init())

		m.Update(keyRunes("/"))
		if !m.searching {
			t.Fatal("expected search input focused")
		}
		m.Update(keyRunes("dune"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		drain(m, cmd)

		if !m.showResults || len(m.results) != 1 {
			t.Fatalf("expected 1 result, got %v", m.results)
		}
		if m.homeList.Title != `Results for "dune"` {
			t.Errorf("unexpected list title %q", m.homeList.Title)
		}
	})

	t.Run("q is typed while searching", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{})
		m.Update(keyRunes("/"))
		m.Update(keyRunes("q"))
		if got := m.input.Value(); got != "q" {
			t.Errorf("expected q in search box, got %q", got)
		}
	})

	t.Run("stale results are discarded", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{})
		stale := m.runSearch("old")
		m.runSearch("new")

		m.Update(stale())
		if m.showResults {
			t.Error("expected stale search response to be ignored")
		}
	})

	t.Run("blank query clears results", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{})
		m.showResults = true
		m.results = []models.MovieSummary{tu.Movie(1, "A", "", -1)}

		m.Update(keyRunes("/"))
		m.Update(keyRunes("   "))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no search for blank query")
		}
		if m.showResults {
			t.Error("expected results cleared")
		}
	})
}

func TestDetail(t *testing.T) {
	runtime := 155
	dune := tu.Movie(9, "Dune", "2021-10-22", 8.1)
	page := &tasks.DetailPage{
		Movie:   models.MovieDetail{MovieSummary: dune, Runtime: &runtime, Overview: "Spice."},
		Trailer: &models.Video{Key: "abc", Site: "YouTube", Type: "Trailer"},
		Cast:    []models.CastMember{{Name: "Timothée Chalamet", Character: "Paul"}},
		Similar: []models.MovieSummary{tu.Movie(10, "Arrival", "2016-11-11", 7.6)},
	}

	t.Run("opens detail and renders page", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{home: homePage(), details: map[int]*tasks.DetailPage{9: page}})
		drain(m, m.openDetail(tu.Movie(9, "Dune", "2021-10-22", -1)))

		if m.State() != DetailView {
			t.Fatalf("expected detail view, got %v", m.State())
		}
		view := m.View()
		for _, want := range []string{"Dune (2021)", "2h 35m", "Spice.", "Paul", "Arrival", "youtube.com"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in detail view", want)
			}
		}
	})

	t.Run("adding from detail captures catalog rating", func(t *testing.T) {
		m, store := newTestModel(t, &fakeBrowser{details: map[int]*tasks.DetailPage{9: page}})
		drain(m, m.openDetail(tu.Movie(9, "Dune", "2021-10-22", -1)))

		m.Update(keyRunes("a"))
		got, ok := store.Get(9)
		if !ok {
			t.Fatal("expected movie added")
		}
		if got.VoteAverage == nil || *got.VoteAverage != 8.1 {
			t.Errorf("expected rating 8.1, got %v", got.VoteAverage)
		}
	})

	t.Run("late response for earlier movie is dropped", func(t *testing.T) {
		other := &tasks.DetailPage{Movie: models.MovieDetail{MovieSummary: tu.Movie(1, "Alpha", "", -1)}}
		m, _ := newTestModel(t, &fakeBrowser{details: map[int]*tasks.DetailPage{1: other, 9: page}})

		first := m.openDetail(tu.Movie(1, "Alpha", "", -1))
		second := m.openDetail(dune)
		m.Update(second())
		m.Update(first())

		if m.detail == nil || m.detail.Movie.ID != 9 {
			t.Errorf("expected detail for 9 to remain, got %+v", m.detail)
		}
	})

	t.Run("response after leaving is dropped", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{details: map[int]*tasks.DetailPage{9: page}})
		cmd := m.openDetail(dune)
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m.Update(cmd())

		if m.State() != HomeView {
			t.Errorf("expected home view, got %v", m.State())
		}
		if m.detail != nil {
			t.Error("expected detail response to be discarded")
		}
	})

	t.Run("trailer opens link", func(t *testing.T) {
		var opened string
		m, _ := newTestModel(t, &fakeBrowser{details: map[int]*tasks.DetailPage{9: page}})
		m.openURL = func(link string) error { opened = link; return nil }
		drain(m, m.openDetail(dune))

		_, cmd := m.Update(keyRunes("t"))
		drain(m, cmd)
		if opened != "https://www.youtube.com/watch?v=abc" {
			t.Errorf("unexpected link %q", opened)
		}
	})

	t.Run("fetch error is shown", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{err: errors.New("offline")})
		drain(m, m.openDetail(dune))
		if !strings.Contains(m.View(), "offline") {
			t.Error("expected error in view")
		}
	})

	t.Run("back returns to the opening view", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{details: map[int]*tasks.DetailPage{9: page}})
		m.Update(keyRunes("w"))
		drain(m, m.openDetail(dune))
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.State() != WatchlistView {
			t.Errorf("expected watchlist view, got %v", m.State())
		}
	})
}

func TestWatchlistView(t *testing.T) {
	seed := func(t *testing.T, store *watchlist.Store) {
		t.Helper()
		for _, mv := range []models.MovieSummary{
			tu.Movie(1, "Old", "1999-01-01", 9.0),
			tu.Movie(2, "New", "2023-01-01", 5.0),
		} {
			if _, err := store.Add(mv); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
		}
	}

	t.Run("sort cycles criteria", func(t *testing.T) {
		m, store := newTestModel(t, &fakeBrowser{})
		seed(t, store)
		m.Update(keyRunes("w"))

		first := func() string { return m.watchList.Items()[0].(movieItem).movie.Title }
		if first() != "New" {
			t.Errorf("added order: expected New first, got %s", first())
		}
		m.Update(keyRunes("s"))
		if first() != "New" {
			t.Errorf("year order: expected New first, got %s", first())
		}
		m.Update(keyRunes("s"))
		if first() != "Old" {
			t.Errorf("rating order: expected Old first, got %s", first())
		}
	})

	t.Run("remove is immediate and dims until settled", func(t *testing.T) {
		m, store := newTestModel(t, &fakeBrowser{})
		seed(t, store)
		m.Update(keyRunes("w"))

		_, cmd := m.Update(keyRunes("d"))
		if store.Len() != 1 {
			t.Fatalf("expected immediate removal, got %d entries", store.Len())
		}
		if !m.dimmed || !strings.Contains(m.View(), "Removing New") {
			t.Error("expected dimmed removal state")
		}

		drain(m, cmd)
		if m.dimmed || m.removal.Active() {
			t.Error("expected removal state to settle")
		}
	})

	t.Run("empty watchlist", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeBrowser{})
		m.Update(keyRunes("w"))
		if _, cmd := m.Update(keyRunes("d")); cmd != nil {
			t.Error("expected no removal on empty list")
		}
		if !strings.Contains(m.View(), "Your watchlist is empty") {
			t.Error("expected empty state")
		}
	})
}
