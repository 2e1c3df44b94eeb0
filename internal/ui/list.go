package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.MovieSummary] to implement [list.Item].
type movieItem struct {
	movie       models.MovieSummary
	badge       string
	inWatchlist bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	title := fmt.Sprintf("%s (%s)", i.movie.Title, i.movie.Year())
	if i.badge != "" {
		title = fmt.Sprintf("%s [%s]", title, i.badge)
	}
	return title
}
func (i movieItem) Description() string {
	var parts []string
	if r := shared.FormatRating(i.movie.VoteAverage); r != "" {
		parts = append(parts, "★ "+r)
	}
	if i.movie.ReleaseDate != nil {
		parts = append(parts, *i.movie.ReleaseDate)
	}
	if i.inWatchlist {
		parts = append(parts, "✓ In Watchlist")
	}
	if len(parts) == 0 {
		return "No details"
	}
	return strings.Join(parts, " • ")
}

// movieItems converts movies to list items, marking the ones in the watchlist.
func movieItems(movies []models.MovieSummary, badge string, contains func(int) bool) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, badge: badge, inWatchlist: contains != nil && contains(m.ID)}
	}
	return items
}

func newMovieList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// dimmedDelegate renders every row with the dimmed styles, used while a removal is shown.
func dimmedDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = d.Styles.DimmedTitle
	d.Styles.NormalDesc = d.Styles.DimmedDesc
	d.Styles.SelectedTitle = d.Styles.DimmedTitle
	d.Styles.SelectedDesc = d.Styles.DimmedDesc
	return d
}
