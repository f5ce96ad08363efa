// Package stats contains game history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of games.
type Summary struct {
	Games        int
	Wins         int
	WinRate      float64
	BestWin      int // fewest words in a won game, 0 when none
	AvgWinWords  float64
	AvgCoverage  float64
	TotalElapsed time.Duration
}

// Summarize computes win and coverage figures for games.
func Summarize(games []model.GameAggregate) Summary {
	var s Summary
	s.Games = len(games)
	if s.Games == 0 {
		return s
	}
	var coverage float64
	winWords := 0
	for _, g := range games {
		if g.Total > 0 {
			coverage += float64(g.Consumed) / float64(g.Total)
		}
		s.TotalElapsed += time.Duration(g.DurationMs) * time.Millisecond
		if !g.Won {
			continue
		}
		s.Wins++
		winWords += g.Words
		if s.BestWin == 0 || g.Words < s.BestWin {
			s.BestWin = g.Words
		}
	}
	s.WinRate = float64(s.Wins) / float64(s.Games)
	s.AvgCoverage = coverage / float64(s.Games)
	if s.Wins > 0 {
		s.AvgWinWords = float64(winWords) / float64(s.Wins)
	}
	return s
}

// WinWords returns the word count of each won game, oldest first.
func WinWords(games []model.GameAggregate) []float64 {
	var out []float64
	for _, g := range games {
		if g.Won {
			out = append(out, float64(g.Words))
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the summary block for games.
func RenderSummary(w io.Writer, games []model.GameAggregate, window int) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	s := Summarize(games)
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", s.Games),
		fmt.Sprintf("Wins: %d (%.1f%%)", s.Wins, s.WinRate*100),
		fmt.Sprintf("Avg coverage: %.1f%%", s.AvgCoverage*100),
		fmt.Sprintf("Time played: %s", s.TotalElapsed.Round(time.Second)),
	}
	if s.Wins > 0 {
		lines = append(lines,
			fmt.Sprintf("Best win: %d words", s.BestWin),
			fmt.Sprintf("Avg words per win: %.2f", s.AvgWinWords),
		)
		if spark := Sparkline(MovingAverage(WinWords(games), window)); len(spark) > 1 {
			lines = append(lines, fmt.Sprintf("Words per win: [%s]", spark))
		}
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderGameTable prints one row per game, newest first.
func RenderGameTable(w io.Writer, games []model.GameAggregate) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	headers, rows := GameRows(games)
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// GameRows formats games as table cells, newest first.
func GameRows(games []model.GameAggregate) ([]string, [][]string) {
	headers := []string{"Ended", "Puzzle", "Words", "Letters", "Result"}
	rows := make([][]string, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		result := "open"
		if g.Won {
			result = "won"
		}
		rows = append(rows, []string{
			g.EndedAt.Local().Format("2006-01-02 15:04"),
			g.Puzzle,
			fmt.Sprintf("%d", g.Words),
			fmt.Sprintf("%d/%d", g.Consumed, g.Total),
			result,
		})
	}
	return headers, rows
}

// RenderWordTable prints word usage counts.
func RenderWordTable(w io.Writer, words []model.WordAggregate) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}
	headers, rows := WordRows(words)
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WordRows formats word counts as table cells.
func WordRows(words []model.WordAggregate) ([]string, [][]string) {
	headers := []string{"Word", "Uses"}
	rows := make([][]string, 0, len(words))
	for _, wa := range words {
		rows = append(rows, []string{wa.Word, fmt.Sprintf("%d", wa.Count)})
	}
	return headers, rows
}
