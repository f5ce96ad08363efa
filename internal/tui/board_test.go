package tui

import (
	"strings"
	"testing"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
)

func TestComputeLayoutKeepsSlotsDistinct(t *testing.T) {
	for _, name := range puzzle.PresetNames() {
		def, err := puzzle.Preset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		layout := computeLayout(def, defaultBoardWidth, defaultBoardHeight)
		if len(layout.vertices) != def.K {
			t.Fatalf("%s: expected %d vertices, got %d", name, def.K, len(layout.vertices))
		}
		seen := map[point]puzzle.Position{}
		for _, pos := range def.Positions() {
			p, ok := layout.slots[pos]
			if !ok {
				t.Fatalf("%s: slot %s not placed", name, pos)
			}
			if p.x < 0 || p.x >= layout.width || p.y < 0 || p.y >= layout.height {
				t.Fatalf("%s: slot %s at %+v outside canvas", name, pos, p)
			}
			if other, dup := seen[p]; dup {
				t.Fatalf("%s: slots %s and %s share cell %+v", name, pos, other, p)
			}
			seen[p] = pos
		}
	}
}

func TestComputeLayoutCentresSingleLetter(t *testing.T) {
	def := puzzle.MustNew("tiny", "A", "B", "C", "D")
	layout := computeLayout(def, 41, 21)
	// Square vertices sit at top, right, bottom and left; the first edge
	// runs from top to right so its midpoint is up and to the right.
	p := layout.slots[puzzle.Position{Side: 0, Index: 0}]
	top, right := layout.vertices[0], layout.vertices[1]
	if p.x <= top.x || p.x >= right.x || p.y <= top.y || p.y >= right.y {
		t.Fatalf("expected %+v between %+v and %+v", p, top, right)
	}
}

func TestCanvasLineSkipsEndpoints(t *testing.T) {
	c := newCanvas(5, 5)
	c.line(point{0, 0}, point{4, 4}, '*', glyphCurrent)
	for i := 0; i < 5; i++ {
		want := '*'
		if i == 0 || i == 4 {
			want = ' '
		}
		if got := c.at(point{i, i}).r; got != want {
			t.Fatalf("cell %d: expected %q, got %q", i, want, got)
		}
	}
	if got := c.at(point{1, 0}).r; got != ' ' {
		t.Fatalf("unexpected cell off the diagonal: %q", got)
	}
}

func TestCanvasSetIgnoresOutOfBounds(t *testing.T) {
	c := newCanvas(3, 2)
	c.set(point{-1, 0}, 'x', glyphLetter)
	c.set(point{3, 1}, 'x', glyphLetter)
	c.set(point{1, 1}, 'x', glyphLetter)
	if got := c.render(false); got != "\n x" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestDrawBoardShowsEveryLetter(t *testing.T) {
	def, err := puzzle.Preset("hexagon")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	consumed := map[puzzle.Position]bool{{Side: 0, Index: 0}: true}
	view := boardView{
		def:       def,
		completed: [][]puzzle.Position{{{Side: 0, Index: 0}, {Side: 3, Index: 2}}},
		current:   []puzzle.Position{{Side: 1, Index: 1}},
		consumed:  func(p puzzle.Position) bool { return consumed[p] },
	}
	layout := computeLayout(def, defaultBoardWidth, defaultBoardHeight)
	c := drawBoard(view, layout)
	for _, pos := range def.Positions() {
		g := c.at(layout.slots[pos])
		if g.r != def.Letter(pos) {
			t.Fatalf("slot %s: expected %q, got %q", pos, def.Letter(pos), g.r)
		}
	}
	if g := c.at(layout.slots[puzzle.Position{Side: 0, Index: 0}]); g.kind != glyphLetterUsed {
		t.Fatalf("expected consumed styling, got %v", g.kind)
	}
	if g := c.at(layout.slots[puzzle.Position{Side: 1, Index: 1}]); g.kind != glyphLetterActive {
		t.Fatalf("expected active styling, got %v", g.kind)
	}
	out := c.render(false)
	if !strings.Contains(out, "∙") || !strings.Contains(out, "+") {
		t.Fatalf("expected path and outline glyphs:\n%s", out)
	}
	if len(strings.Split(out, "\n")) != defaultBoardHeight {
		t.Fatalf("expected %d rows", defaultBoardHeight)
	}
}

func TestRenderSidesFallback(t *testing.T) {
	def := puzzle.MustNew("square", "GAT", "LEF", "IND", "ROS")
	out := renderSides(boardView{def: def})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 || !strings.Contains(lines[0], "G") || !strings.Contains(lines[3], "S") {
		t.Fatalf("unexpected fallback:\n%s", out)
	}
}
