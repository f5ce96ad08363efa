package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lboxed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertGame(t *testing.T, st *Store, puzzleName string, at time.Time, won bool, words ...string) int64 {
	t.Helper()
	records := make([]model.WordRecord, len(words))
	for i, w := range words {
		records[i] = model.WordRecord{Seq: i, Word: w, Path: "0:0 1:0 2:0"}
	}
	game := model.GameRecord{
		StartedAt:  at,
		EndedAt:    at.Add(2 * time.Minute),
		Puzzle:     puzzleName,
		Board:      "GAT/LEF/IND/ROS",
		K:          4,
		N:          3,
		Words:      len(words),
		Consumed:   9,
		Total:      12,
		Won:        won,
		DurationMs: (2 * time.Minute).Milliseconds(),
	}
	id, err := st.InsertGame(context.Background(), game, records)
	if err != nil {
		t.Fatalf("insert game: %v", err)
	}
	return id
}

func TestInsertAndListGames(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	first := insertGame(t, st, "square", base, false, "after", "rest")
	second := insertGame(t, st, "hexagon", base.Add(time.Hour), true, "combs", "shift", "tube")

	games, err := st.ListGames(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GameID != first || games[1].GameID != second {
		t.Fatalf("expected oldest first, got %+v", games)
	}
	if games[0].Won || !games[1].Won {
		t.Fatalf("won flags not round-tripped: %+v", games)
	}
	if games[1].Words != 3 || games[1].Total != 12 || games[1].Puzzle != "hexagon" {
		t.Fatalf("unexpected aggregate %+v", games[1])
	}
	if !games[1].EndedAt.Equal(base.Add(time.Hour + 2*time.Minute)) {
		t.Fatalf("unexpected ended_at %v", games[1].EndedAt)
	}
}

func TestListGamesFilters(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	insertGame(t, st, "square", base, false, "after")
	insertGame(t, st, "hexagon", base.Add(48*time.Hour), true, "combs")
	insertGame(t, st, "square", base.Add(72*time.Hour), true, "rest")

	ctx := context.Background()
	games, err := st.ListGames(ctx, model.StatsConfig{Puzzle: "square"})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 square games, got %d", len(games))
	}

	since := base.Add(24 * time.Hour)
	games, err = st.ListGames(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games since %v, got %d", since, len(games))
	}
}

func TestListWordsAndTopWords(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	a := insertGame(t, st, "square", base, true, "after", "rest", "told")
	b := insertGame(t, st, "square", base.Add(time.Hour), true, "rest", "told")
	insertGame(t, st, "square", base.Add(2*time.Hour), true, "design")

	ctx := context.Background()
	words, err := st.ListWords(ctx, a)
	if err != nil {
		t.Fatalf("list words: %v", err)
	}
	if len(words) != 3 || words[0].Word != "after" || words[2].Seq != 2 {
		t.Fatalf("unexpected words %+v", words)
	}

	top, err := st.TopWords(ctx, []int64{a, b}, 2)
	if err != nil {
		t.Fatalf("top words: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 top words, got %+v", top)
	}
	if top[0].Word != "rest" || top[0].Count != 2 || top[1].Word != "told" {
		t.Fatalf("unexpected top words %+v", top)
	}

	none, err := st.TopWords(ctx, nil, 5)
	if err != nil || none != nil {
		t.Fatalf("expected nil for no games, got %v %v", none, err)
	}
}
