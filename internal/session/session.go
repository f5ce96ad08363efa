// Package session implements the word-building rules of the letter board.
//
// A State is driven one discrete action at a time: SelectLetter appends a
// slot to the word in progress, ClearCurrentWord drops it, and
// SubmitCurrentWord checks it against an injected dictionary. Rule
// violations never return errors; they produce a rejecting Outcome and a
// status message for the presentation layer.
//
// State is not safe for concurrent use. Callers must not overlap
// SubmitCurrentWord calls against the same State.
package session

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
)

// MinWordLength is the shortest word SubmitCurrentWord will look up.
const MinWordLength = 3

// Status messages.
const (
	msgSameSide = "Can't use two letters from the same side consecutively."
	msgTooShort = "Word must be at least 3 letters."
	fmtFirst    = "The first letter must be %q."
	fmtUnknown  = "%q is not in the dictionary."
	fmtAccepted = "%q accepted!"
	fmtWon      = "You won! All letters used in %d words!"
)

// Lookup answers whether a lowercase word is a dictionary entry.
type Lookup interface {
	Contains(word string) bool
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(word string) bool

// Contains implements Lookup.
func (f LookupFunc) Contains(word string) bool {
	return f(word)
}

// State is one play session bound to a single board.
type State struct {
	def puzzle.Definition

	word     []rune
	used     []puzzle.Position
	consumed mapset.Set[puzzle.Position]
	required rune // 0 when unset
	accepted []string
	paths    [][]puzzle.Position
	status   string
}

// New starts a session on def.
func New(def puzzle.Definition) (*State, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid puzzle: %w", err)
	}
	return &State{
		def:      def,
		consumed: mapset.New[puzzle.Position](),
	}, nil
}

// Definition returns the board the session plays on.
func (s *State) Definition() puzzle.Definition {
	return s.def
}

// Select appends the letter found at pos. See SelectLetter.
func (s *State) Select(pos puzzle.Position) Outcome {
	return s.SelectLetter(s.def.Letter(pos), pos)
}

// SelectLetter tries to extend the word in progress with letter taken from pos.
// It panics if pos is not on the board.
func (s *State) SelectLetter(letter rune, pos puzzle.Position) Outcome {
	if !s.def.Valid(pos) {
		panic(fmt.Sprintf("session: position %s outside %dx%d board", pos, s.def.K, s.def.N))
	}
	if len(s.word) == 0 && s.required != 0 && unicode.ToLower(letter) != s.required {
		s.status = fmt.Sprintf(fmtFirst, string(unicode.ToUpper(s.required)))
		return ContinuationMismatch
	}
	if n := len(s.used); n > 0 && s.used[n-1].Side == pos.Side {
		s.status = msgSameSide
		return AdjacentSideReuse
	}
	s.word = append(s.word, letter)
	s.used = append(s.used, pos)
	s.status = ""
	return Selected
}

// ClearCurrentWord drops the word in progress. The status message is kept.
func (s *State) ClearCurrentWord() {
	s.word = nil
	s.used = nil
}

// SubmitCurrentWord checks the word in progress and commits it when dict
// recognises it. Words shorter than MinWordLength are refused without
// consulting dict and stay in progress.
func (s *State) SubmitCurrentWord(dict Lookup) Outcome {
	word := strings.ToLower(string(s.word))
	runes := []rune(word)
	if len(runes) < MinWordLength {
		s.status = msgTooShort
		return WordTooShort
	}
	if !dict.Contains(word) {
		s.status = fmt.Sprintf(fmtUnknown, word)
		s.ClearCurrentWord()
		return UnknownWord
	}

	for _, pos := range s.used {
		s.consumed.Put(pos)
	}
	s.accepted = append(s.accepted, word)
	path := make([]puzzle.Position, len(s.used))
	copy(path, s.used)
	s.paths = append(s.paths, path)

	outcome := Accepted
	if s.consumed.Size() == s.def.Total() {
		s.status = fmt.Sprintf(fmtWon, len(s.accepted))
		outcome = Won
	} else {
		s.status = fmt.Sprintf(fmtAccepted, word)
	}
	s.required = runes[len(runes)-1]
	s.ClearCurrentWord()
	return outcome
}

// Phase reports where the session is in the word-building cycle.
func (s *State) Phase() Phase {
	switch {
	case len(s.word) > 0:
		return PhaseBuilding
	case s.required != 0:
		return PhaseAwaitingContinuation
	default:
		return PhaseIdle
	}
}

// SlotFor picks the slot a typed letter most likely refers to: one not on
// the last used side, preferring slots not yet consumed. When every
// candidate shares the last side the first one is returned so the caller
// can surface the rejection. ok is false when the letter is not on the board.
func (s *State) SlotFor(letter rune) (pos puzzle.Position, ok bool) {
	candidates := s.def.Candidates(letter)
	if len(candidates) == 0 {
		return puzzle.Position{}, false
	}
	lastSide := -1
	if n := len(s.used); n > 0 {
		lastSide = s.used[n-1].Side
	}
	var fallback *puzzle.Position
	for i := range candidates {
		c := candidates[i]
		if c.Side == lastSide {
			continue
		}
		if !s.consumed.Has(c) {
			return c, true
		}
		if fallback == nil {
			fallback = &candidates[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return candidates[0], true
}

// PathFor finds slots spelling word with no two consecutive letters on the
// same side, trying slots not yet consumed first. found is false when a
// letter is missing from the board or no such spelling exists.
func (s *State) PathFor(word string) (path []puzzle.Position, found bool) {
	letters := []rune(word)
	if len(letters) == 0 {
		return nil, false
	}
	options := make([][]puzzle.Position, len(letters))
	for i, r := range letters {
		candidates := s.def.Candidates(r)
		if len(candidates) == 0 {
			return nil, false
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return !s.consumed.Has(candidates[a]) && s.consumed.Has(candidates[b])
		})
		options[i] = candidates
	}

	path = make([]puzzle.Position, 0, len(letters))
	var walk func(i int) bool
	walk = func(i int) bool {
		if i == len(options) {
			return true
		}
		for _, c := range options[i] {
			if i > 0 && path[i-1].Side == c.Side {
				continue
			}
			path = append(path, c)
			if walk(i + 1) {
				return true
			}
			path = path[:i]
		}
		return false
	}
	if !walk(0) {
		return nil, false
	}
	return path, true
}

// TypeLetter extends the word in progress with a typed letter. The slots of
// the whole word are resolved again on every call, so a duplicate letter
// placed earlier never blocks a legal spelling. When no legal spelling
// exists the letter goes through SlotFor and Select, which report the
// violation. ok is false when the letter is not on the board.
func (s *State) TypeLetter(letter rune) (outcome Outcome, ok bool) {
	if len(s.word) > 0 {
		if path, found := s.PathFor(string(s.word) + string(letter)); found {
			word := make([]rune, len(path))
			for i, p := range path {
				word[i] = s.def.Letter(p)
			}
			s.word, s.used, s.status = word, path, ""
			return Selected, true
		}
	}
	pos, ok := s.SlotFor(letter)
	if !ok {
		return Selected, false
	}
	return s.Select(pos), true
}

// CurrentWord returns the letters selected so far.
func (s *State) CurrentWord() string {
	return string(s.word)
}

// UsedPositions returns the slots behind CurrentWord, in order.
func (s *State) UsedPositions() []puzzle.Position {
	out := make([]puzzle.Position, len(s.used))
	copy(out, s.used)
	return out
}

// Consumed reports whether pos appeared in an accepted word.
func (s *State) Consumed(pos puzzle.Position) bool {
	return s.consumed.Has(pos)
}

// ConsumedPositions lists every consumed slot, side-major.
func (s *State) ConsumedPositions() []puzzle.Position {
	out := make([]puzzle.Position, 0, s.consumed.Size())
	s.consumed.Each(func(pos puzzle.Position) {
		out = append(out, pos)
	})
	puzzle.SortPositions(out)
	return out
}

// ConsumedCount is the number of distinct consumed slots.
func (s *State) ConsumedCount() int {
	return s.consumed.Size()
}

// Remaining is the number of slots not yet consumed.
func (s *State) Remaining() int {
	return s.def.Total() - s.consumed.Size()
}

// Won reports whether every slot has been consumed.
func (s *State) Won() bool {
	return s.consumed.Size() == s.def.Total()
}

// CompletedPaths returns a copy of the slot sequence of each accepted word.
func (s *State) CompletedPaths() [][]puzzle.Position {
	out := make([][]puzzle.Position, len(s.paths))
	for i, p := range s.paths {
		out[i] = append([]puzzle.Position(nil), p...)
	}
	return out
}

// AcceptedWords returns the accepted words in order.
func (s *State) AcceptedWords() []string {
	return append([]string(nil), s.accepted...)
}

// AcceptedCount is the number of accepted words.
func (s *State) AcceptedCount() int {
	return len(s.accepted)
}

// RequiredFirstLetter returns the letter the next word must start with.
func (s *State) RequiredFirstLetter() (rune, bool) {
	return s.required, s.required != 0
}

// Status returns the feedback of the last operation.
func (s *State) Status() string {
	return s.status
}
