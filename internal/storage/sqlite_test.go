package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)
	base := time.Unix(1700000000, 0)

	for i, score := range []int{100, 50, 200, 100} {
		_, err := store.SaveRun(Run{
			Player:    "alice",
			Score:     score,
			Level:     1,
			EndedBy:   EndGameOver,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending, ties by age
	if runs[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", runs[0].Score)
	}
	if runs[1].Score != 100 || !runs[1].CreatedAt.Equal(base) {
		t.Errorf("Expected the older 100 second, got %d at %v", runs[1].Score, runs[1].CreatedAt)
	}
	if runs[2].Score != 100 {
		t.Errorf("Expected third score to be 100, got %d", runs[2].Score)
	}
}

func TestStoreAssignsIDs(t *testing.T) {
	store := openTest(t)

	a, err := store.SaveRun(Run{Score: 1, Level: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	b, err := store.SaveRun(Run{Score: 2, Level: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("SaveRun() ids = %q, %q, expected unique non-empty", a.ID, b.ID)
	}
	if a.Player != "anonymous" {
		t.Errorf("Player = %q, expected anonymous", a.Player)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if _, err := store.SaveRun(Run{ID: a.ID}); err == nil {
		t.Error("SaveRun() with a duplicate id should fail")
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTest(t)

	best, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("HighScore() on empty ledger = %d, expected 0", best)
	}

	store.SaveRun(Run{Player: "a", Score: 120, Level: 3, Waves: 0})
	store.SaveRun(Run{Player: "b", Score: 800, Level: 7, Waves: 1})

	best, _ = store.HighScore()
	if best != 800 {
		t.Errorf("HighScore() = %d, expected 800", best)
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	expected := Stats{Runs: 2, Best: 800, TotalWaves: 1, AverageScore: 460}
	if st != expected {
		t.Errorf("Stats() = %+v, expected %+v", st, expected)
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTest(t)
	base := time.Unix(1700000000, 0)

	store.SaveRun(Run{Player: "alice", Score: 10, CreatedAt: base})
	store.SaveRun(Run{Player: "bob", Score: 20, CreatedAt: base.Add(time.Second)})
	store.SaveRun(Run{Player: "alice", Score: 30, CreatedAt: base.Add(2 * time.Second)})

	runs, err := store.PlayerRuns("alice")
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 30 || runs[1].Score != 10 {
		t.Errorf("PlayerRuns() = %+v, expected alice's runs newest first", runs)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := openTest(t)
	b := openTest(t)

	a.SaveRun(Run{Score: 99})

	runs, err := b.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("a fresh ledger should be empty, got %d runs", len(runs))
	}
}

func TestRunFromWorld(t *testing.T) {
	w := world.NewWorld()
	w.Score = 620
	w.Level = 7
	w.Waves = 1
	w.ElapsedTime = 1234

	r := RunFromWorld("carol", w, EndGameOver)
	if r.Score != 620 || r.Level != 7 || r.Waves != 1 || r.Elapsed != 1234 {
		t.Errorf("RunFromWorld() = %+v", r)
	}
	if r.Player != "carol" || r.EndedBy != EndGameOver {
		t.Errorf("RunFromWorld() = %+v", r)
	}
}
