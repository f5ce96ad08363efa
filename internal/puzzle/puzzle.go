// Package puzzle defines the k-sided letter board.
package puzzle

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// MinSides is the smallest board that still forms a polygon.
const MinSides = 3

// Position addresses one letter slot on the board.
type Position struct {
	Side  int `json:"side"`
	Index int `json:"index"`
}

// String renders the position as "side:index".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Side, p.Index)
}

// Less orders positions side-major.
func (p Position) Less(o Position) bool {
	if p.Side == o.Side {
		return p.Index < o.Index
	}
	return p.Side < o.Side
}

// Definition is a board of K sides holding N letters each.
type Definition struct {
	Name  string
	K     int
	N     int
	Sides [][]rune
}

// New builds a definition from one string per side. Letters are upper-cased.
func New(name string, sides ...string) (Definition, error) {
	def := Definition{Name: name, K: len(sides)}
	def.Sides = make([][]rune, 0, len(sides))
	for _, side := range sides {
		letters := []rune(strings.ToUpper(strings.TrimSpace(side)))
		def.Sides = append(def.Sides, letters)
	}
	if len(def.Sides) > 0 {
		def.N = len(def.Sides[0])
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// MustNew is New for fixed boards; it panics on malformed input.
func MustNew(name string, sides ...string) Definition {
	def, err := New(name, sides...)
	if err != nil {
		panic(err)
	}
	return def
}

// Validate checks the board invariants.
func (d Definition) Validate() error {
	if d.K < MinSides {
		return fmt.Errorf("board needs at least %d sides, got %d", MinSides, d.K)
	}
	if d.N < 1 {
		return fmt.Errorf("each side needs at least 1 letter, got %d", d.N)
	}
	if len(d.Sides) != d.K {
		return fmt.Errorf("expected %d sides, got %d", d.K, len(d.Sides))
	}
	for i, side := range d.Sides {
		if len(side) != d.N {
			return fmt.Errorf("side %d has %d letters, expected %d", i, len(side), d.N)
		}
		for _, r := range side {
			if !unicode.IsLetter(r) {
				return fmt.Errorf("side %d contains non-letter %q", i, r)
			}
		}
	}
	return nil
}

// Clone returns a copy of d that shares no memory with it.
func (d Definition) Clone() Definition {
	sides := make([][]rune, len(d.Sides))
	for i, side := range d.Sides {
		sides[i] = append([]rune(nil), side...)
	}
	d.Sides = sides
	return d
}

// Total is the number of addressable letters (K×N).
func (d Definition) Total() int {
	return d.K * d.N
}

// Valid reports whether pos names a slot on the board.
func (d Definition) Valid(pos Position) bool {
	return pos.Side >= 0 && pos.Side < d.K && pos.Index >= 0 && pos.Index < d.N
}

// Letter returns the letter at pos. It panics when pos is off the board.
func (d Definition) Letter(pos Position) rune {
	if !d.Valid(pos) {
		panic(fmt.Sprintf("puzzle: position %s outside %dx%d board", pos, d.K, d.N))
	}
	return d.Sides[pos.Side][pos.Index]
}

// Positions lists every slot, side-major.
func (d Definition) Positions() []Position {
	out := make([]Position, 0, d.Total())
	for side := 0; side < d.K; side++ {
		for idx := 0; idx < d.N; idx++ {
			out = append(out, Position{Side: side, Index: idx})
		}
	}
	return out
}

// Candidates returns the slots holding letter, compared case-insensitively.
func (d Definition) Candidates(letter rune) []Position {
	want := unicode.ToLower(letter)
	var out []Position
	for side, letters := range d.Sides {
		for idx, r := range letters {
			if unicode.ToLower(r) == want {
				out = append(out, Position{Side: side, Index: idx})
			}
		}
	}
	return out
}

// SideString returns the letters of one side as a string.
func (d Definition) SideString(side int) string {
	return string(d.Sides[side])
}

// String renders the board as "CAT/DOG/...".
func (d Definition) String() string {
	parts := make([]string, len(d.Sides))
	for i := range d.Sides {
		parts[i] = d.SideString(i)
	}
	return strings.Join(parts, "/")
}

// SortPositions orders positions side-major in place.
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}

type definitionJSON struct {
	Name  string   `json:"name,omitempty"`
	K     int      `json:"k"`
	N     int      `json:"n"`
	Sides []string `json:"sides"`
}

// MarshalJSON encodes sides as strings.
func (d Definition) MarshalJSON() ([]byte, error) {
	out := definitionJSON{Name: d.Name, K: d.K, N: d.N, Sides: make([]string, len(d.Sides))}
	for i := range d.Sides {
		out.Sides[i] = d.SideString(i)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates a board.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var in definitionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	def, err := New(in.Name, in.Sides...)
	if err != nil {
		return err
	}
	if (in.K != 0 && in.K != def.K) || (in.N != 0 && in.N != def.N) {
		return fmt.Errorf("declared %dx%d board does not match %dx%d sides", in.K, in.N, def.K, def.N)
	}
	*d = def
	return nil
}

// FormatPath renders a slot sequence as "0:0 1:1 5:0".
func FormatPath(path []Position) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// ParsePath is the inverse of FormatPath.
func ParsePath(s string) ([]Position, error) {
	fields := strings.Fields(s)
	out := make([]Position, 0, len(fields))
	for _, f := range fields {
		var p Position
		if _, err := fmt.Sscanf(f, "%d:%d", &p.Side, &p.Index); err != nil {
			return nil, fmt.Errorf("invalid path step %q: %w", f, err)
		}
		out = append(out, p)
	}
	return out, nil
}
