package watchlist

import (
	"sync"

	"github.com/desertthunder/cinex/internal/models"
)

// View is the sorted projection of a [Store] for display.
type View struct {
	mu        sync.Mutex
	criterion SortCriterion
	source    []models.MovieSummary
	items     []models.MovieSummary
	listeners []func([]models.MovieSummary)

	unsubscribe func()
}

// NewView computes the initial projection of store and keeps it current until [View.Close].
func NewView(store *Store, c SortCriterion) *View {
	v := &View{criterion: c}
	v.unsubscribe = store.Subscribe(v.refresh)
	v.refresh(store.Items())
	return v
}

// Items returns the current display order.
func (v *View) Items() []models.MovieSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.MovieSummary, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of displayed entries.
func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

// Criterion returns the active sort criterion.
func (v *View) Criterion() SortCriterion {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criterion
}

// SetCriterion changes the sort order and recomputes.
func (v *View) SetCriterion(c SortCriterion) {
	v.mu.Lock()
	if c == v.criterion {
		v.mu.Unlock()
		return
	}
	v.criterion = c
	v.recompute()
}

// OnChange registers fn to run after every recompute.
func (v *View) OnChange(fn func(items []models.MovieSummary)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Close detaches the view from its store.
func (v *View) Close() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (v *View) refresh(items []models.MovieSummary) {
	v.mu.Lock()
	v.source = items
	v.recompute()
}

// recompute must be called with mu held and releases it before calling listeners.
func (v *View) recompute() {
	v.items = ComputeView(v.source, v.criterion)
	items := make([]models.MovieSummary, len(v.items))
	copy(items, v.items)
	listeners := append([]func([]models.MovieSummary){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(items)
	}
}
