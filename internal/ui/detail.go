package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/formatter"
	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.detailSeq++
		m.view = m.returnTo
		if m.view == WatchlistView {
			m.refreshWatchlist()
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.toggle(m.detailMovie())
		return m, nil
	case key.Matches(msg, m.keys.trailer):
		return m, m.openTrailer()
	case key.Matches(msg, m.keys.watchlist):
		m.detailSeq++
		m.view = WatchlistView
		m.refreshWatchlist()
		return m, nil
	}

	if m.detail == nil || len(m.detail.Similar) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.up):
		if m.similarIdx > 0 {
			m.similarIdx--
		}
	case key.Matches(msg, m.keys.down):
		if m.similarIdx < len(m.detail.Similar)-1 {
			m.similarIdx++
		}
	case key.Matches(msg, m.keys.enter):
		return m, m.openDetail(m.detail.Similar[m.similarIdx])
	}
	return m, nil
}

// detailMovie is the summary the detail view adds to the watchlist.
//
// Once the page has loaded it carries the catalog's rating; before that the preview is used.
func (m *Model) detailMovie() models.MovieSummary {
	if m.detail != nil {
		return m.detail.Movie.MovieSummary
	}
	return m.preview
}

func (m *Model) openTrailer() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	link := m.detail.TrailerURL()
	if link == "" {
		m.setError(fmt.Errorf("no trailer available for %s", m.detail.Movie.Title))
		return nil
	}
	m.setStatus("Opening trailer...")
	open := m.openURL
	return func() tea.Msg {
		return trailerOpenedMsg(open(link))
	}
}

func (m *Model) renderDetail() string {
	var b strings.Builder
	movie := m.detailMovie()

	b.WriteString(styles.title.Render(movie.String()))
	b.WriteString("\n")

	switch {
	case m.detailErr != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load details: %v", m.detailErr)))
	case m.detail == nil:
		b.WriteString(styles.help.Render("Loading details..."))
	default:
		b.WriteString(m.renderDetailPage())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.detailHelp()))
	return b.String()
}

func (m *Model) renderDetailPage() string {
	d := m.detail
	movie := d.Movie

	var facts []string
	if movie.Runtime != nil {
		facts = append(facts, shared.FormatRuntime(*movie.Runtime))
	}
	if r := shared.FormatRating(movie.VoteAverage); r != "" {
		facts = append(facts, "★ "+r)
	}
	if genres := movie.GenreNames(); len(genres) > 0 {
		facts = append(facts, strings.Join(genres, ", "))
	}

	var b strings.Builder
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " • "))
		b.WriteString("\n")
	}
	if movie.Tagline != "" {
		b.WriteString(styles.help.Render(movie.Tagline))
		b.WriteString("\n")
	}
	if movie.Overview != "" {
		b.WriteString("\n")
		b.WriteString(movie.Overview)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.store.Contains(movie.ID) {
		b.WriteString(styles.ok.Render("✓ In your watchlist"))
	} else {
		b.WriteString(styles.help.Render("Not in your watchlist"))
	}
	b.WriteString("\n")

	if poster := formatter.PosterURL(m.images, movie.MovieSummary); poster != "" {
		fmt.Fprintf(&b, "Poster: %s\n", poster)
	}
	if link := d.TrailerURL(); link != "" {
		fmt.Fprintf(&b, "Trailer: %s\n", link)
	} else {
		b.WriteString(styles.help.Render("No trailer available"))
		b.WriteString("\n")
	}

	if len(d.Cast) > 0 {
		names := make([]string, len(d.Cast))
		for i, c := range d.Cast {
			names[i] = c.Name
			if c.Character != "" {
				names[i] = fmt.Sprintf("%s as %s", c.Name, c.Character)
			}
		}
		fmt.Fprintf(&b, "\nCast: %s\n", strings.Join(names, ", "))
	}

	if len(d.Similar) > 0 {
		b.WriteString("\nSimilar movies:\n")
		for i, s := range d.Similar {
			line := fmt.Sprintf("  %s", s.String())
			if i == m.similarIdx {
				line = styles.active.Render("› " + s.String())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
