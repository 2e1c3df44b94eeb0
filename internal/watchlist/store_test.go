package watchlist

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	tu "github.com/desertthunder/cinex/internal/testing"
)

func newHydratedStore(t *testing.T, kv *tu.MemoryKV) *Store {
	t.Helper()
	s := NewStore(NewDurableStore(kv, "wl"), nil)
	if err := s.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	return s
}

func TestStoreHydrate(t *testing.T) {
	t.Run("restores saved state", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		_ = kv.Set("wl", `[{"id":5,"title":"E"},{"id":4,"title":"D"}]`)
		s := newHydratedStore(t, kv)
		if !equalIDs(s.Items(), 5, 4) {
			t.Errorf("expected [5 4], got %v", ids(s.Items()))
		}
		if !s.Contains(4) || s.Contains(1) {
			t.Error("membership does not match hydrated state")
		}
	})

	t.Run("invalid json is treated as empty", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		_ = kv.Set("wl", `[{"id":`)
		s := NewStore(NewDurableStore(kv, "wl"), nil)
		if err := s.Hydrate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty store, got %d items", s.Len())
		}
		if _, err := s.Toggle(tu.Movie(1, "A", "", -1)); err != nil {
			t.Errorf("expected mutations to be accepted, got %v", err)
		}
	})

	t.Run("bad entry keeps the rest", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		_ = kv.Set("wl", `[{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"   "}]`)
		s := newHydratedStore(t, kv)
		if !equalIDs(s.Items(), 1, 2) {
			t.Fatalf("expected [1 2], got %v", ids(s.Items()))
		}

		if _, err := s.Toggle(tu.Movie(5, "E", "", -1)); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		fresh := newHydratedStore(t, kv)
		if !equalIDs(fresh.Items(), 1, 2, 5) {
			t.Errorf("expected saved entries to survive a write, got %v", ids(fresh.Items()))
		}
	})

	t.Run("only once", func(t *testing.T) {
		s := newHydratedStore(t, tu.NewMemoryKV())
		if err := s.Hydrate(); !errors.Is(err, shared.ErrAlreadyHydrated) {
			t.Errorf("expected ErrAlreadyHydrated, got %v", err)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		kv.GetErr = errors.New("locked")
		s := NewStore(NewDurableStore(kv, "wl"), nil)
		if err := s.Hydrate(); err == nil {
			t.Fatal("expected error")
		}
		if s.Hydrated() {
			t.Error("store should not be hydrated after a read failure")
		}
	})

	t.Run("mutation before hydrate", func(t *testing.T) {
		s := NewStore(NewDurableStore(tu.NewMemoryKV(), "wl"), nil)
		if _, err := s.Toggle(tu.Movie(1, "A", "", -1)); !errors.Is(err, shared.ErrNotHydrated) {
			t.Errorf("expected ErrNotHydrated, got %v", err)
		}
	})
}

func TestStoreToggle(t *testing.T) {
	a := tu.Movie(1, "A", "2020-01-01", 7.5)
	b := tu.Movie(2, "B", "2023-01-01", 6.0)

	t.Run("add then remove", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		s := newHydratedStore(t, kv)

		if added, err := s.Toggle(a); err != nil || !added {
			t.Fatalf("Toggle(a) = %v, %v", added, err)
		}
		if added, err := s.Toggle(b); err != nil || !added {
			t.Fatalf("Toggle(b) = %v, %v", added, err)
		}
		if !equalIDs(ComputeView(s.Items(), AddedOrder), 1, 2) {
			t.Errorf("expected [1 2], got %v", ids(s.Items()))
		}

		if added, err := s.Toggle(a); err != nil || added {
			t.Fatalf("second Toggle(a) = %v, %v", added, err)
		}
		if !equalIDs(s.Items(), 2) {
			t.Errorf("expected [2], got %v", ids(s.Items()))
		}
		if kv.Sets() != 3 {
			t.Errorf("expected a write per mutation, got %d", kv.Sets())
		}

		fresh := newHydratedStore(t, kv)
		if !equalIDs(fresh.Items(), 2) {
			t.Errorf("expected fresh load to reproduce [2], got %v", ids(fresh.Items()))
		}
	})

	t.Run("toggle parity", func(t *testing.T) {
		s := newHydratedStore(t, tu.NewMemoryKV())
		rng := rand.New(rand.NewSource(42))
		counts := map[int]int{}
		for range 200 {
			id := rng.Intn(10)
			if _, err := s.Toggle(tu.Movie(id, "M", "", -1)); err != nil {
				t.Fatalf("Toggle failed: %v", err)
			}
			counts[id]++
		}
		for id := range 10 {
			if want := counts[id]%2 == 1; s.Contains(id) != want {
				t.Errorf("Contains(%d) = %v after %d toggles", id, !want, counts[id])
			}
		}
	})

	t.Run("rejects untitled add", func(t *testing.T) {
		s := newHydratedStore(t, tu.NewMemoryKV())
		if _, err := s.Toggle(models.MovieSummary{ID: 9}); !errors.Is(err, shared.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got %v", err)
		}
		if s.Contains(9) {
			t.Error("untitled movie should not be stored")
		}
	})

	t.Run("rejects blank title", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		s := newHydratedStore(t, kv)
		if _, err := s.Toggle(tu.Movie(1, "A", "", -1)); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if _, err := s.Toggle(tu.Movie(3, "   ", "", -1)); !errors.Is(err, shared.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got %v", err)
		}
		if s.Contains(3) || kv.Sets() != 1 {
			t.Errorf("blank title should not be stored or saved, %d writes", kv.Sets())
		}

		fresh := newHydratedStore(t, kv)
		if !equalIDs(fresh.Items(), 1) {
			t.Errorf("expected reload to match [1], got %v", ids(fresh.Items()))
		}
	})

	t.Run("save failure keeps in-memory change", func(t *testing.T) {
		kv := tu.NewMemoryKV()
		s := newHydratedStore(t, kv)
		kv.SetErr = errors.New("quota exceeded")

		added, err := s.Toggle(a)
		if !errors.Is(err, shared.ErrStorageWrite) {
			t.Errorf("expected ErrStorageWrite, got %v", err)
		}
		if !added || !s.Contains(a.ID) {
			t.Error("expected in-memory add despite write failure")
		}
	})
}

func TestStoreAddRemove(t *testing.T) {
	kv := tu.NewMemoryKV()
	s := newHydratedStore(t, kv)
	a := tu.Movie(1, "A", "", -1)

	if ok, err := s.Add(a); !ok || err != nil {
		t.Fatalf("Add = %v, %v", ok, err)
	}
	if ok, err := s.Add(a); ok || err != nil {
		t.Errorf("second Add = %v, %v; expected no-op", ok, err)
	}
	if s.Len() != 1 || kv.Sets() != 1 {
		t.Errorf("expected a single entry and write, got %d entries, %d writes", s.Len(), kv.Sets())
	}

	if ok, err := s.Remove(2); ok || err != nil {
		t.Errorf("Remove(missing) = %v, %v; expected no-op", ok, err)
	}
	if ok, err := s.Remove(1); !ok || err != nil {
		t.Errorf("Remove = %v, %v", ok, err)
	}
	if s.Contains(1) {
		t.Error("expected entry to be removed")
	}
	if _, ok := s.Get(1); ok {
		t.Error("Get should miss a removed entry")
	}

	t.Run("concurrent removes never re-add", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			s := newHydratedStore(t, tu.NewMemoryKV())
			if _, err := s.Add(a); err != nil {
				t.Fatalf("Add failed: %v", err)
			}

			var wg sync.WaitGroup
			var removed atomic.Int32
			for j := 0; j < 4; j++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if ok, _ := s.Remove(a.ID); ok {
						removed.Add(1)
					}
				}()
			}
			wg.Wait()

			if s.Contains(a.ID) || removed.Load() != 1 {
				t.Fatalf("iteration %d: contains=%v removed=%d", i, s.Contains(a.ID), removed.Load())
			}
		}
	})

	t.Run("concurrent adds store once", func(t *testing.T) {
		s := newHydratedStore(t, tu.NewMemoryKV())
		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Add(a)
			}()
		}
		wg.Wait()
		if s.Len() != 1 {
			t.Errorf("expected a single entry, got %d", s.Len())
		}
	})

	t.Run("before hydrate", func(t *testing.T) {
		s := NewStore(NewDurableStore(tu.NewMemoryKV(), "wl"), nil)
		if _, err := s.Remove(1); !errors.Is(err, shared.ErrNotHydrated) {
			t.Errorf("expected ErrNotHydrated, got %v", err)
		}
		if _, err := s.Add(a); !errors.Is(err, shared.ErrNotHydrated) {
			t.Errorf("expected ErrNotHydrated, got %v", err)
		}
	})
}

func TestStoreSubscribe(t *testing.T) {
	s := newHydratedStore(t, tu.NewMemoryKV())

	var calls [][]int
	unsubscribe := s.Subscribe(func(items []models.MovieSummary) {
		calls = append(calls, ids(items))
	})

	_, _ = s.Toggle(tu.Movie(1, "A", "", -1))
	_, _ = s.Toggle(tu.Movie(2, "B", "", -1))
	unsubscribe()
	_, _ = s.Toggle(tu.Movie(3, "C", "", -1))

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if len(calls[1]) != 2 || calls[1][1] != 2 {
		t.Errorf("unexpected snapshot %v", calls[1])
	}

	t.Run("snapshots are copies", func(t *testing.T) {
		items := s.Items()
		items[0].Title = "changed"
		if got, _ := s.Get(items[0].ID); got.Title == "changed" {
			t.Error("Items should not alias store state")
		}
	})
}
