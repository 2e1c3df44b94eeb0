package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/tasks"
	"github.com/desertthunder/cinex/internal/watchlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	DetailView
	WatchlistView
)

func (v ViewState) String() string {
	switch v {
	case HomeView:
		return "Home"
	case DetailView:
		return "Details"
	case WatchlistView:
		return "Watchlist"
	default:
		return ""
	}
}

// settleSlack is added to the removal delay so the flag has cleared when the tick lands.
const settleSlack = 20 * time.Millisecond

// Options configures a [Model].
type Options struct {
	ImageBaseURL string
	RemovalDelay time.Duration
	OpenURL      func(link string) error // defaults to [shared.OpenBrowser]
	Logger       *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	browser tasks.BrowseEngine
	store   *watchlist.Store
	sorted  *watchlist.View
	removal *watchlist.RemovalTransition
	openURL func(string) error
	images  string
	logger  *log.Logger

	width  int
	height int

	// home
	input       textinput.Model
	searching   bool
	searchSeq   int
	query       string
	results     []models.MovieSummary
	showResults bool
	home        *tasks.HomePage
	homeLoading bool
	progress    tasks.ProgressUpdate
	section     int
	homeList    list.Model

	// detail
	returnTo   ViewState
	detailSeq  int
	preview    models.MovieSummary
	detail     *tasks.DetailPage
	detailErr  error
	similarIdx int

	// watchlist
	watchList list.Model
	dimmed    bool

	status    string
	statusErr bool
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model over a hydrated watchlist store.
func NewModel(ctx context.Context, browser tasks.BrowseEngine, store *watchlist.Store, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = shared.OpenBrowser
	}

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "🔍 "
	input.CharLimit = 120

	m := &Model{
		ctx:       ctx,
		view:      HomeView,
		browser:   browser,
		store:     store,
		sorted:    watchlist.NewView(store, watchlist.AddedOrder),
		removal:   watchlist.NewRemovalTransition(store, opts.RemovalDelay),
		openURL:   openURL,
		images:    opts.ImageBaseURL,
		logger:    shared.WithLogger(logger, "component", "tui"),
		input:     input,
		homeList:  newMovieList("Now Playing"),
		watchList: newMovieList("Watchlist"),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.refreshWatchlist()
	return m
}

// Close releases the watchlist view subscription.
func (m *Model) Close() {
	m.sorted.Close()
}

// State returns the current [ViewState].
func (m *Model) State() ViewState {
	return m.view
}

// Init starts loading the home sliders.
func (m *Model) Init() tea.Cmd {
	return m.loadHome()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeList.SetSize(msg.Width-4, msg.Height-10)
		m.watchList.SetSize(msg.Width-4, msg.Height-8)
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && !(m.searching && msg.String() == "q") {
			return m, tea.Quit
		}
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case WatchlistView:
			return m.handleWatchlistKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgress:
		p := msg.data.(progressUpdate)
		m.progress = p.update
		return m, p.next

	case MsgHomeLoaded:
		page, _ := msg.data.(*tasks.HomePage)
		m.homeLoading = false
		m.home = page
		if page != nil {
			for _, s := range page.Failed() {
				m.logger.Warn("slider failed", "collection", s.Collection, "error", s.Err)
			}
		}
		m.refreshHome()
		return m, nil

	case MsgSearchResults:
		res := msg.data.(searchResults)
		if res.seq != m.searchSeq {
			m.logger.Debug("discarding stale search", "query", res.query)
			return m, nil
		}
		if res.err != nil {
			m.setError(fmt.Errorf("search failed: %w", res.err))
			return m, nil
		}
		m.results = res.results
		m.showResults = true
		m.section = 0
		m.setStatus(fmt.Sprintf("%s for %q", shared.CountLabel(len(res.results), "result"), res.query))
		m.refreshHome()
		return m, nil

	case MsgDetailLoaded:
		res := msg.data.(detailLoaded)
		if res.seq != m.detailSeq || m.view != DetailView {
			m.logger.Debug("discarding stale detail", "id", res.id)
			return m, nil
		}
		m.detail = res.page
		m.detailErr = res.err
		m.similarIdx = 0
		return m, nil

	case MsgRemovalSettled:
		if m.removal.Active() {
			return m, settleAfter(settleSlack)
		}
		m.undim()
		return m, nil

	case MsgTrailerOpened:
		if err, ok := msg.data.(error); ok && err != nil {
			m.setError(fmt.Errorf("could not open trailer: %w", err))
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case HomeView:
		body = m.renderHome()
	case DetailView:
		body = m.renderDetail()
	case WatchlistView:
		body = m.renderWatchlist()
	}
	return fmt.Sprintf("%s\n%s%s", m.renderHeader(), body, m.renderStatus())
}

func (m *Model) renderHeader() string {
	tabs := []string{}
	for _, v := range []ViewState{HomeView, WatchlistView} {
		label := v.String()
		if v == WatchlistView {
			label = fmt.Sprintf("%s (%d)", label, m.store.Len())
		}
		if v == m.view || (m.view == DetailView && v == m.returnTo) {
			tabs = append(tabs, styles.active.Render(label))
		} else {
			tabs = append(tabs, styles.tab.Render(label))
		}
	}
	return styles.title.Render("🎬 cinex") + "  " + strings.Join(tabs, " ")
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return "\n" + styles.err.Render(m.status)
	}
	return "\n" + styles.ok.Render(m.status)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.logger.Error("tui", "error", err)
	m.status = err.Error()
	m.statusErr = true
}

// toggle flips movie's watchlist membership and reports the outcome in the status line.
func (m *Model) toggle(movie models.MovieSummary) {
	added, err := m.store.Toggle(movie)
	switch {
	case errors.Is(err, shared.ErrStorageWrite):
		m.setError(fmt.Errorf("change kept for this session only: %w", err))
	case err != nil:
		m.setError(err)
	case added:
		m.setStatus(fmt.Sprintf("Added %s to watchlist", movie.Title))
	default:
		m.setStatus(fmt.Sprintf("Removed %s from watchlist", movie.Title))
	}
	m.refreshHome()
	m.refreshWatchlist()
}

// openDetail switches to the detail view and fetches movie's page.
//
// Every request bumps detailSeq so a late response for an earlier movie is discarded.
func (m *Model) openDetail(movie models.MovieSummary) tea.Cmd {
	if m.view != DetailView {
		m.returnTo = m.view
	}
	m.view = DetailView
	m.detailSeq++
	m.preview = movie
	m.detail = nil
	m.detailErr = nil
	m.similarIdx = 0

	seq, id := m.detailSeq, movie.ID
	return func() tea.Msg {
		page, err := m.browser.Detail(m.ctx, nil, id)
		return detailLoadedMsg(seq, id, page, err)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	m.searchSeq++
	m.query = query
	seq := m.searchSeq
	return func() tea.Msg {
		results, err := m.browser.Search(m.ctx, nil, query)
		return searchResultsMsg(seq, query, results, err)
	}
}

// loadHome fetches the sliders, forwarding progress until the page is ready.
func (m *Model) loadHome() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, len(models.Collections)+1)
	done := make(chan *tasks.HomePage, 1)
	m.homeLoading = true

	go func() {
		page := m.browser.Home(m.ctx, progress)
		done <- page
		close(progress)
	}()
	return waitForHome(progress, done)
}

func waitForHome(progress <-chan tasks.ProgressUpdate, done <-chan *tasks.HomePage) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return homeLoadedMsg(<-done)
		}
		return progressMsg(update, waitForHome(progress, done))
	}
}

func settleAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return removalSettledMsg() })
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		if m.searching {
			m.input, cmd = m.input.Update(msg)
		} else {
			m.homeList, cmd = m.homeList.Update(msg)
		}
	case WatchlistView:
		m.watchList, cmd = m.watchList.Update(msg)
	}
	return m, cmd
}

func selectedMovie(l list.Model) (models.MovieSummary, bool) {
	item, ok := l.SelectedItem().(movieItem)
	if !ok {
		return models.MovieSummary{}, false
	}
	return item.movie, true
}
