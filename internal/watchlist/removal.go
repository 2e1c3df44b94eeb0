package watchlist

import (
	"sync"
	"time"

	"github.com/desertthunder/cinex/internal/models"
)

// DefaultRemovalDelay is how long the removing flag stays set.
const DefaultRemovalDelay = 300 * time.Millisecond

// Scheduler runs fn once after d and returns a function that cancels it.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

// AfterFunc is the default [Scheduler].
func AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// RemovalTransition tracks the transient "removing" state shown while an entry leaves the watchlist.
//
// The store mutation happens immediately; only the flag is delayed.
type RemovalTransition struct {
	mu       sync.Mutex
	store    *Store
	delay    time.Duration
	schedule Scheduler

	active   bool
	last     models.MovieSummary
	gen      uint64
	stop     func() bool
	onChange func(active bool)
}

// NewRemovalTransition creates a transition over store. A non-positive delay uses [DefaultRemovalDelay].
func NewRemovalTransition(store *Store, delay time.Duration) *RemovalTransition {
	if delay <= 0 {
		delay = DefaultRemovalDelay
	}
	return &RemovalTransition{store: store, delay: delay, schedule: AfterFunc}
}

// SetScheduler replaces the timer used to clear the flag.
func (r *RemovalTransition) SetScheduler(s Scheduler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedule = s
}

// OnChange registers fn to run whenever the flag flips.
func (r *RemovalTransition) OnChange(fn func(active bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Delay returns how long the flag stays set.
func (r *RemovalTransition) Delay() time.Duration {
	return r.delay
}

// Active reports whether a removal is still being shown.
func (r *RemovalTransition) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Last returns the most recently removed entry.
func (r *RemovalTransition) Last() models.MovieSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// RequestRemoval sets the flag, removes movie from the store and schedules the flag to clear.
//
// A later request supersedes the pending reset of an earlier one. When the store rejects the removal
// the flag is cleared at once.
func (r *RemovalTransition) RequestRemoval(movie models.MovieSummary) error {
	r.mu.Lock()
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
	r.gen++
	gen := r.gen
	r.active = true
	r.last = movie
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(true)
	}

	if _, err := r.store.Remove(movie.ID); err != nil {
		r.reset(gen)
		return err
	}

	r.mu.Lock()
	schedule := r.schedule
	r.mu.Unlock()

	stop := schedule(r.delay, func() { r.reset(gen) })

	r.mu.Lock()
	if r.gen == gen && r.active {
		r.stop = stop
	}
	r.mu.Unlock()
	return nil
}

func (r *RemovalTransition) reset(gen uint64) {
	r.mu.Lock()
	if r.gen != gen || !r.active {
		r.mu.Unlock()
		return
	}
	r.active = false
	r.stop = nil
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(false)
	}
}
