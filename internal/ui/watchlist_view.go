package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshWatchlist loads the sorted projection into the watchlist list.
func (m *Model) refreshWatchlist() {
	items := m.sorted.Items()
	m.watchList.Title = fmt.Sprintf("Watchlist · %s", m.sorted.Criterion().Label())
	m.watchList.SetItems(movieItems(items, "", nil))
}

func (m *Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		m.refreshHome()
		return m, nil
	case key.Matches(msg, m.keys.sort):
		next := m.sorted.Criterion().Next()
		m.sorted.SetCriterion(next)
		m.watchList.ResetSelected()
		m.refreshWatchlist()
		m.setStatus(fmt.Sprintf("Sorted by %s", next.Label()))
		return m, nil
	case key.Matches(msg, m.keys.remove):
		return m, m.removeSelected()
	case key.Matches(msg, m.keys.enter):
		if movie, ok := selectedMovie(m.watchList); ok {
			return m, m.openDetail(movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.watchList, cmd = m.watchList.Update(msg)
	return m, cmd
}

// removeSelected removes the highlighted entry at once and dims the list until the transition settles.
func (m *Model) removeSelected() tea.Cmd {
	movie, ok := selectedMovie(m.watchList)
	if !ok {
		return nil
	}

	err := m.removal.RequestRemoval(movie)
	m.refreshWatchlist()
	m.refreshHome()
	if err != nil {
		m.setError(fmt.Errorf("could not remove %s: %w", movie.Title, err))
		if !m.removal.Active() {
			return nil
		}
	} else {
		m.setStatus(fmt.Sprintf("Removed %s from watchlist", movie.Title))
	}

	m.dimmed = true
	m.watchList.SetDelegate(dimmedDelegate())
	return settleAfter(m.removal.Delay() + settleSlack)
}

func (m *Model) undim() {
	if !m.dimmed {
		return
	}
	m.dimmed = false
	m.watchList.SetDelegate(list.NewDefaultDelegate())
}

func (m *Model) renderWatchlist() string {
	var b strings.Builder
	if m.removal.Active() {
		b.WriteString(styles.dim.Render(fmt.Sprintf("Removing %s...", m.removal.Last().Title)))
		b.WriteString("\n")
	}

	if m.sorted.Len() == 0 {
		b.WriteString(styles.title.Render(m.watchList.Title))
		b.WriteString("\n")
		b.WriteString(styles.help.Render("Your watchlist is empty. Press a on any movie to add it."))
	} else {
		b.WriteString(m.watchList.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.watchlistHelp()))
	return b.String()
}
