package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "lboxed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	games := []struct {
		at    time.Time
		won   bool
		words []string
	}{
		{base, false, []string{"after"}},
		{base.Add(time.Hour), true, []string{"after", "rest", "told", "design"}},
	}
	for _, g := range games {
		records := make([]model.WordRecord, len(g.words))
		for i, w := range g.words {
			records[i] = model.WordRecord{Seq: i, Word: w, Path: "0:0 1:0 2:0"}
		}
		consumed := 5
		if g.won {
			consumed = 12
		}
		_, err := st.InsertGame(context.Background(), model.GameRecord{
			StartedAt: g.at,
			EndedAt:   g.at.Add(time.Minute),
			Puzzle:    "square",
			Board:     "GAT/LEF/IND/ROS",
			K:         4,
			N:         3,
			Words:     len(g.words),
			Consumed:  consumed,
			Total:     12,
			Won:       g.won,
		}, records)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
	}
	return st
}

func TestOverviewShowsSummary(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	for _, want := range []string{"Overview", "Games: 2", "Wins: 1 (50.0%)", "Best win: 4 words"} {
		if !strings.Contains(out, want) {
			t.Fatalf("overview missing %q:\n%s", want, out)
		}
	}
}

func TestGamesTabShowsSelectedGameWords(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabGames {
		t.Fatalf("expected games tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.detail, "after → rest → told → design") {
		t.Fatalf("expected newest game words, got %q", m.detail)
	}
	if !strings.Contains(m.View(), "won") {
		t.Fatalf("expected result column in games view")
	}
}

func TestWordsTabListsTopWords(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabWords {
		t.Fatalf("expected tab navigation to wrap to words, got %d", m.activeTab)
	}
	if len(m.report.TopWords) == 0 || m.report.TopWords[0].Word != "after" || m.report.TopWords[0].Count != 2 {
		t.Fatalf("unexpected top words %+v", m.report.TopWords)
	}
}

func TestApplyFilter(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{})
	m.startFilter()
	m.filterInputs[1].SetValue("not-a-date")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected invalid date error")
	}
	m.filterInputs[1].SetValue("")
	m.filterInputs[2].SetValue("1")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if len(m.report.Games) != 1 || !m.report.Games[0].Won {
		t.Fatalf("expected only the latest game, got %+v", m.report.Games)
	}

	m.filterInputs[0].SetValue("hexagon")
	m.filterInputs[2].SetValue("")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if len(m.report.Games) != 0 {
		t.Fatalf("expected no hexagon games, got %d", len(m.report.Games))
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fit %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncate %q", got)
	}
}
