package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/session"
)

// Inset of the first and last letter from the edge's corners.
const edgeMargin = 0.12

const (
	minBoardWidth  = 24
	minBoardHeight = 11
)

type glyphKind uint8

const (
	glyphEmpty glyphKind = iota
	glyphOutline
	glyphCompleted
	glyphCurrent
	glyphLetter
	glyphLetterUsed
	glyphLetterActive
)

type point struct {
	x, y int
}

type glyph struct {
	r    rune
	kind glyphKind
	skip bool // right half of a wide rune
}

// boardLayout maps each slot to a canvas cell.
type boardLayout struct {
	width    int
	height   int
	vertices []point
	slots    map[puzzle.Position]point
}

// boardView is everything the canvas needs from the session.
type boardView struct {
	def       puzzle.Definition
	completed [][]puzzle.Position
	current   []puzzle.Position
	consumed  func(puzzle.Position) bool
}

func viewOf(st *session.State) boardView {
	return boardView{
		def:       st.Definition(),
		completed: st.CompletedPaths(),
		current:   st.UsedPositions(),
		consumed:  st.Consumed,
	}
}

// RenderBoard draws the board of st into a width x height area. Areas too
// small for the polygon get one line of letters per side instead.
func RenderBoard(st *session.State, width, height int, styled bool) string {
	return renderBoard(viewOf(st), width, height, styled)
}

func renderBoard(view boardView, width, height int, styled bool) string {
	if width < minBoardWidth || height < minBoardHeight {
		return renderSides(view)
	}
	return drawBoard(view, computeLayout(view.def, width, height)).render(styled)
}

func computeLayout(def puzzle.Definition, width, height int) boardLayout {
	layout := boardLayout{
		width:  width,
		height: height,
		slots:  make(map[puzzle.Position]point, def.Total()),
	}
	// Terminal cells are about twice as tall as they are wide.
	ry := float64(height-1) / 2
	rx := float64(width-3) / 2
	if rx > 2*ry {
		rx = 2 * ry
	} else {
		ry = rx / 2
	}
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2

	type fpoint struct{ x, y float64 }
	fverts := make([]fpoint, def.K)
	step := 2 * math.Pi / float64(def.K)
	for i := 0; i < def.K; i++ {
		angle := step*float64(i) - math.Pi/2
		fverts[i] = fpoint{x: cx + rx*math.Cos(angle), y: cy + ry*math.Sin(angle)}
		layout.vertices = append(layout.vertices, point{x: round(fverts[i].x), y: round(fverts[i].y)})
	}
	for side := 0; side < def.K; side++ {
		start := fverts[side]
		end := fverts[(side+1)%def.K]
		for idx := 0; idx < def.N; idx++ {
			t := 0.5
			if def.N > 1 {
				t = edgeMargin + (1-2*edgeMargin)*float64(idx)/float64(def.N-1)
			}
			layout.slots[puzzle.Position{Side: side, Index: idx}] = point{
				x: round(start.x + (end.x-start.x)*t),
				y: round(start.y + (end.y-start.y)*t),
			}
		}
	}
	return layout
}

func round(v float64) int {
	return int(math.Round(v))
}

type canvas struct {
	width  int
	height int
	cells  [][]glyph
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, cells: make([][]glyph, height)}
	for y := range c.cells {
		c.cells[y] = make([]glyph, width)
		for x := range c.cells[y] {
			c.cells[y][x] = glyph{r: ' '}
		}
	}
	return c
}

func (c *canvas) set(p point, r rune, kind glyphKind) {
	if p.y < 0 || p.y >= c.height || p.x < 0 || p.x >= c.width {
		return
	}
	c.cells[p.y][p.x] = glyph{r: r, kind: kind}
	if runewidth.RuneWidth(r) == 2 && p.x+1 < c.width {
		c.cells[p.y][p.x+1] = glyph{kind: kind, skip: true}
	}
}

func (c *canvas) at(p point) glyph {
	return c.cells[p.y][p.x]
}

// line draws between a and b, leaving both endpoints untouched.
func (c *canvas) line(a, b point, r rune, kind glyphKind) {
	dx := abs(b.x - a.x)
	dy := -abs(b.y - a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy
	x, y := a.x, a.y
	for {
		if (x != a.x || y != a.y) && (x != b.x || y != b.y) {
			c.set(point{x: x, y: y}, r, kind)
		}
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawBoard(view boardView, layout boardLayout) *canvas {
	c := newCanvas(layout.width, layout.height)
	k := len(layout.vertices)
	for i := 0; i < k; i++ {
		a, b := layout.vertices[i], layout.vertices[(i+1)%k]
		c.line(a, b, '·', glyphOutline)
		c.set(a, '+', glyphOutline)
	}
	for _, path := range view.completed {
		drawPath(c, layout, path, '∙', glyphCompleted)
	}
	drawPath(c, layout, view.current, '•', glyphCurrent)

	active := make(map[puzzle.Position]bool, len(view.current))
	for _, p := range view.current {
		active[p] = true
	}
	for _, pos := range view.def.Positions() {
		kind := glyphLetter
		switch {
		case active[pos]:
			kind = glyphLetterActive
		case view.consumed != nil && view.consumed(pos):
			kind = glyphLetterUsed
		}
		c.set(layout.slots[pos], view.def.Letter(pos), kind)
	}
	return c
}

func drawPath(c *canvas, layout boardLayout, path []puzzle.Position, r rune, kind glyphKind) {
	for i := 1; i < len(path); i++ {
		c.line(layout.slots[path[i-1]], layout.slots[path[i]], r, kind)
	}
}

var glyphStyles = map[glyphKind]lipgloss.Style{
	glyphOutline:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
	glyphCompleted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#D6CECE")),
	glyphCurrent:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FAA6A4")),
	glyphLetter:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
	glyphLetterUsed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	glyphLetterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAA6A4")).Bold(true).Underline(true),
}

// render joins runs of equally styled cells to keep escape codes short.
func (c *canvas) render(styled bool) string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		runKind := glyphEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := glyphStyles[runKind]; ok && styled {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, g := range row {
			if g.skip {
				continue
			}
			if g.kind != runKind {
				flush()
				runKind = g.kind
			}
			run.WriteRune(g.r)
		}
		flush()
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// renderSides is the fallback when the terminal is too small for the polygon.
func renderSides(view boardView) string {
	lines := make([]string, 0, view.def.K)
	for side := 0; side < view.def.K; side++ {
		var b strings.Builder
		for idx := 0; idx < view.def.N; idx++ {
			pos := puzzle.Position{Side: side, Index: idx}
			letter := string(view.def.Letter(pos))
			if view.consumed != nil && view.consumed(pos) {
				letter = glyphStyles[glyphLetterUsed].Render(letter)
			} else {
				letter = glyphStyles[glyphLetter].Render(letter)
			}
			if idx > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(letter)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
