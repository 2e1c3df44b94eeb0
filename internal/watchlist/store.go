package watchlist

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// Observer receives a snapshot of the watchlist after every change.
type Observer func(items []models.MovieSummary)

// Store is the in-memory watchlist, written through to a [Persister] on every mutation.
//
// Construct one per process with [NewStore], call [Store.Hydrate] once, then share it.
type Store struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	persister Persister
	logger    *log.Logger

	items    []models.MovieSummary
	index    map[int]struct{}
	hydrated bool

	observers map[int]Observer
	nextObs   int
}

// NewStore creates an empty, unhydrated Store.
func NewStore(p Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Store{
		persister: p,
		logger:    shared.WithLogger(logger, "component", "watchlist"),
		items:     []models.MovieSummary{},
		index:     map[int]struct{}{},
		observers: map[int]Observer{},
	}
}

// Hydrate replaces the in-memory state with the persisted record.
//
// A corrupt record is logged and treated as an empty watchlist. Hydrate may be called only once.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return shared.ErrAlreadyHydrated
	}

	items, err := s.persister.Load()
	switch {
	case errors.Is(err, shared.ErrCorruptState):
		s.logger.Warn("discarding stored watchlist", "error", err)
		items = []models.MovieSummary{}
	case err != nil:
		s.mu.Unlock()
		return fmt.Errorf("failed to hydrate watchlist: %w", err)
	}

	s.items = items
	s.index = make(map[int]struct{}, len(items))
	for _, m := range items {
		s.index[m.ID] = struct{}{}
	}
	s.hydrated = true
	s.logger.Debug("hydrated", "count", len(items))

	s.publish()
	return nil
}

// Hydrated reports whether [Store.Hydrate] has completed.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Toggle removes movie when its id is present, otherwise appends it, then saves and notifies observers.
//
// added reports the direction of the change. A save failure is returned after the in-memory state has
// changed.
func (s *Store) Toggle(movie models.MovieSummary) (added bool, err error) {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return false, shared.ErrNotHydrated
	}
	_, present := s.index[movie.ID]
	return s.mutate(movie, !present)
}

// Add inserts movie unless it is already present.
func (s *Store) Add(movie models.MovieSummary) (bool, error) {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return false, shared.ErrNotHydrated
	}
	if _, ok := s.index[movie.ID]; ok {
		s.mu.Unlock()
		return false, nil
	}
	return s.mutate(movie, true)
}

// Remove deletes the entry with id, reporting whether one was removed.
func (s *Store) Remove(id int) (bool, error) {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return false, shared.ErrNotHydrated
	}
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return false, nil
	}
	_, err := s.mutate(models.MovieSummary{ID: id}, false)
	return true, err
}

// mutate adds or removes movie, saves, and notifies observers. It must be called with mu held and
// releases it.
func (s *Store) mutate(movie models.MovieSummary, add bool) (bool, error) {
	if add {
		if strings.TrimSpace(movie.Title) == "" {
			s.mu.Unlock()
			return false, fmt.Errorf("%w: missing title for id %d", shared.ErrMalformedRecord, movie.ID)
		}
		s.items = append(s.items, movie)
		s.index[movie.ID] = struct{}{}
	} else {
		s.remove(movie.ID)
	}

	var err error
	if saveErr := s.persister.Save(s.snapshot()); saveErr != nil {
		s.logger.Error("write-through failed", "id", movie.ID, "error", saveErr)
		err = saveErr
	}

	s.publish()
	return add, err
}

// Contains reports whether id is in the watchlist.
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Get returns the stored entry for id.
func (s *Store) Get(id int) (models.MovieSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return models.MovieSummary{}, false
	}
	for _, m := range s.items {
		if m.ID == id {
			return m, true
		}
	}
	return models.MovieSummary{}, false
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []models.MovieSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to run after every change and returns a function that removes it.
//
// Observers run synchronously on the mutating goroutine and must not mutate the store.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// publish hands the current snapshot to observers. It must be called with mu held and releases it; the
// notify lock is taken first so notifications keep mutation order.
func (s *Store) publish() {
	items := s.snapshot()
	observers := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			observers = append(observers, fn)
		}
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range observers {
		fn(items)
	}
}

func (s *Store) remove(id int) {
	delete(s.index, id)
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) snapshot() []models.MovieSummary {
	out := make([]models.MovieSummary, len(s.items))
	copy(out, s.items)
	return out
}
