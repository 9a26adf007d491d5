package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/idle-snake/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(board string, score, length int, reason string) core.RunSummary {
	return core.RunSummary{
		Board:       board,
		Score:       score,
		Length:      length,
		FruitsEaten: length - 3,
		Ticks:       uint64(score * 10),
		GridSize:    20,
		DeathReason: reason,
		Stages:      map[string]int{"path": score, "cache": 2 * score},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.RunSummary{
		run("classic", 100, 13, "self"),
		run("classic", 50, 8, "edge"),
		run("classic", 200, 23, "self"),
		run("classic", 200, 25, "obstacle"),
		run("pillars", 500, 40, "obstacle"),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}

	// Score descending, longer snake first on ties
	expected := []struct{ score, length int }{{200, 25}, {200, 23}, {100, 13}, {50, 8}}
	for i, e := range expected {
		if runs[i].Score != e.score || runs[i].Length != e.length {
			t.Errorf("run %d = %d/%d, expected %d/%d", i, runs[i].Score, runs[i].Length, e.score, e.length)
		}
	}

	first := runs[0]
	if first.Board != "classic" || first.DeathReason != "obstacle" || first.GridSize != 20 || first.Ticks != 2000 {
		t.Errorf("run fields not round-tripped: %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 5 || all[0].Board != "pillars" {
		t.Errorf("TopRuns across boards = %d runs, first %q", len(all), all[0].Board)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveRun(run("classic", i*10, 5, "self")); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{5, 5},
		{0, 10}, // default limit
		{100, 15},
	}
	for _, tc := range tests {
		runs, err := store.TopRuns("classic", tc.limit)
		if err != nil {
			t.Fatalf("TopRuns() failed: %v", err)
		}
		if len(runs) != tc.expected {
			t.Errorf("TopRuns(limit=%d) = %d runs, expected %d", tc.limit, len(runs), tc.expected)
		}
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 30, 20} {
		if _, err := store.SaveRun(run("classic", score, 5, "edge")); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 20 || runs[1].Score != 30 {
		t.Errorf("RecentRuns = %+v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 for empty board, got %d", score)
	}

	for _, s := range []int{10, 50, 30} {
		if _, err := store.SaveRun(run("classic", s, 5, "self")); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	score, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 50 {
		t.Errorf("expected high score 50, got %d", score)
	}
}

func TestStoreStages(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(run("classic", 4, 5, "self"))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run("classic", 6, 5, "self")); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run("pillars", 100, 5, "self")); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	stages, err := store.RunStages(id)
	if err != nil {
		t.Fatalf("RunStages() failed: %v", err)
	}
	if stages["path"] != 4 || stages["cache"] != 8 || len(stages) != 2 {
		t.Errorf("RunStages = %v", stages)
	}

	totals, err := store.StageTotals("classic")
	if err != nil {
		t.Fatalf("StageTotals() failed: %v", err)
	}
	if totals["path"] != 10 || totals["cache"] != 20 {
		t.Errorf("StageTotals(classic) = %v", totals)
	}

	all, err := store.StageTotals("")
	if err != nil {
		t.Fatalf("StageTotals(all) failed: %v", err)
	}
	if all["path"] != 110 {
		t.Errorf("StageTotals(all)[path] = %d, expected 110", all["path"])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(run("classic", 100, 5, "self"))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run("pillars", 200, 5, "self")); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("classic", 10)
	if len(runs) != 0 {
		t.Errorf("expected 0 classic runs after clear, got %d", len(runs))
	}
	stages, _ := store.RunStages(id)
	if len(stages) != 0 {
		t.Errorf("stages of cleared run should be gone, got %v", stages)
	}

	runs, _ = store.TopRuns("pillars", 10)
	if len(runs) != 1 {
		t.Errorf("other boards should be untouched, got %d pillars runs", len(runs))
	}
}

func TestStoreBoardStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.RunSummary{
		run("classic", 10, 6, "self"),
		run("classic", 30, 12, "self"),
		run("classic", 20, 9, "edge"),
		run("portals", 5, 4, "obstacle"),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	st, err := store.GetBoardStats("classic")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if st.Runs != 3 || st.BestScore != 30 || st.AvgScore != 20 || st.MaxLength != 12 {
		t.Errorf("stats = %+v", st)
	}
	if st.Deaths["self"] != 2 || st.Deaths["edge"] != 1 {
		t.Errorf("deaths = %v", st.Deaths)
	}

	empty, err := store.GetBoardStats("gauntlet")
	if err != nil {
		t.Fatalf("GetBoardStats(empty) failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || len(empty.Deaths) != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllBoardsStats()
	if err != nil {
		t.Fatalf("GetAllBoardsStats() failed: %v", err)
	}
	if len(all) != 2 || all[0].Board != "classic" || all[1].Board != "portals" {
		t.Errorf("GetAllBoardsStats boards = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
