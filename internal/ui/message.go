package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgHomeLoaded MsgKind = iota
	MsgSearchResults
	MsgDetailLoaded
	MsgRemovalSettled
	MsgTrailerOpened
	MsgProgress
)

type searchResults struct {
	seq     int
	query   string
	results []models.MovieSummary
	err     error
}

type detailLoaded struct {
	seq  int
	id   int
	page *tasks.DetailPage
	err  error
}

// homeLoadedMsg is the constructor for [MsgHomeLoaded]
func homeLoadedMsg(page *tasks.HomePage) Msg {
	return Msg{kind: MsgHomeLoaded, data: page}
}

// searchResultsMsg is the constructor for [MsgSearchResults]; seq identifies the request.
func searchResultsMsg(seq int, query string, results []models.MovieSummary, err error) Msg {
	return Msg{kind: MsgSearchResults, data: searchResults{seq, query, results, err}}
}

// detailLoadedMsg is the constructor for [MsgDetailLoaded]; seq identifies the request.
func detailLoadedMsg(seq, id int, page *tasks.DetailPage, err error) Msg {
	return Msg{kind: MsgDetailLoaded, data: detailLoaded{seq, id, page, err}}
}

// removalSettledMsg is the constructor for [MsgRemovalSettled]
func removalSettledMsg() Msg {
	return Msg{kind: MsgRemovalSettled}
}

// trailerOpenedMsg is the constructor for [MsgTrailerOpened]
func trailerOpenedMsg(err error) Msg {
	return Msg{kind: MsgTrailerOpened, data: err}
}

type progressUpdate struct {
	update tasks.ProgressUpdate
	next   tea.Cmd
}

// progressMsg is the constructor for [MsgProgress]
func progressMsg(update tasks.ProgressUpdate, next tea.Cmd) Msg {
	return Msg{kind: MsgProgress, data: progressUpdate{update, next}}
}
