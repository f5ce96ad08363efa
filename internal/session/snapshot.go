package session

import (
	"encoding/json"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
)

// Snapshot is a point-in-time copy of a State for rendering or encoding.
type Snapshot struct {
	Puzzle              puzzle.Definition   `json:"puzzle"`
	Phase               Phase               `json:"phase"`
	CurrentWord         string              `json:"current_word"`
	UsedPositions       []puzzle.Position   `json:"used_positions"`
	ConsumedPositions   []puzzle.Position   `json:"consumed_positions"`
	RequiredFirstLetter string              `json:"required_first_letter,omitempty"`
	AcceptedWords       []string            `json:"accepted_words"`
	AcceptedWordCount   int                 `json:"accepted_word_count"`
	CompletedPaths      [][]puzzle.Position `json:"completed_paths"`
	StatusMessage       string              `json:"status_message"`
	Won                 bool                `json:"won"`
}

// Snapshot copies the full session state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Puzzle:            s.def,
		Phase:             s.Phase(),
		CurrentWord:       s.CurrentWord(),
		UsedPositions:     s.UsedPositions(),
		ConsumedPositions: s.ConsumedPositions(),
		AcceptedWords:     s.AcceptedWords(),
		AcceptedWordCount: s.AcceptedCount(),
		CompletedPaths:    s.CompletedPaths(),
		StatusMessage:     s.status,
		Won:               s.Won(),
	}
	if r, ok := s.RequiredFirstLetter(); ok {
		snap.RequiredFirstLetter = string(r)
	}
	return snap
}

// MarshalJSON encodes the session through its Snapshot.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}
