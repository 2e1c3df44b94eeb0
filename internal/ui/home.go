package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/models"
)

// section is one tab of the home view: search results or a curated slider.
type section struct {
	title  string
	badge  string
	movies []models.MovieSummary
	err    error
}

func (m *Model) sections() []section {
	var out []section
	if m.showResults {
		out = append(out, section{title: fmt.Sprintf("Results for %q", m.query), movies: m.results})
	}
	if m.home != nil {
		for _, s := range m.home.Sections {
			out = append(out, section{title: s.Title, badge: s.Badge, movies: s.Movies, err: s.Err})
		}
	}
	return out
}

// refreshHome loads the selected section into the home list.
func (m *Model) refreshHome() {
	secs := m.sections()
	if len(secs) == 0 {
		m.section = 0
		m.homeList.SetItems(nil)
		return
	}
	if m.section >= len(secs) {
		m.section = len(secs) - 1
	}
	s := secs[m.section]
	m.homeList.Title = s.title
	m.homeList.SetItems(movieItems(s.movies, s.badge, m.store.Contains))
}

func (m *Model) cycleSection(delta int) {
	n := len(m.sections())
	if n == 0 {
		return
	}
	m.section = (m.section + delta + n) % n
	m.homeList.ResetSelected()
	m.refreshHome()
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.nextTab):
		m.cycleSection(1)
		return m, nil
	case key.Matches(msg, m.keys.prevTab):
		m.cycleSection(-1)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if movie, ok := selectedMovie(m.homeList); ok {
			return m, m.openDetail(movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if movie, ok := selectedMovie(m.homeList); ok {
			m.toggle(movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.watchlist):
		m.view = WatchlistView
		m.refreshWatchlist()
		return m, nil
	case key.Matches(msg, m.keys.reload):
		if m.homeLoading {
			return m, nil
		}
		return m, m.loadHome()
	case key.Matches(msg, m.keys.back):
		if m.showResults {
			m.clearResults()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.clearResults()
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Searching for %q...", query))
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// clearResults drops the search tab and invalidates any in-flight search.
func (m *Model) clearResults() {
	m.searchSeq++
	m.showResults = false
	m.results = nil
	m.query = ""
	m.section = 0
	m.input.SetValue("")
	m.refreshHome()
}

func (m *Model) renderHome() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	secs := m.sections()
	if len(secs) > 0 {
		tabs := make([]string, len(secs))
		for i, s := range secs {
			label := s.title
			if s.err != nil {
				label += " ✗"
			}
			if i == m.section {
				tabs[i] = styles.active.Render(label)
			} else {
				tabs[i] = styles.tab.Render(label)
			}
		}
		b.WriteString(strings.Join(tabs, ""))
		b.WriteString("\n")
	}

	switch {
	case m.homeLoading:
		msg := "Loading movies..."
		if m.progress.Message != "" {
			msg = m.progress.Message
		}
		b.WriteString(styles.help.Render(msg))
	case len(secs) == 0:
		b.WriteString(styles.warn.Render("Nothing to show. Press r to reload."))
	default:
		s := secs[m.section]
		if s.err != nil {
			b.WriteString(styles.warn.Render(fmt.Sprintf("Could not load %s: %v", s.title, s.err)))
		} else if len(s.movies) == 0 {
			b.WriteString(styles.help.Render("No movies found."))
		} else {
			b.WriteString(m.homeList.View())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.homeHelp()))
	return b.String()
}
