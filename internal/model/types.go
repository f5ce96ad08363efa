// Package model defines shared data structures.
package model

import "time"

// Config defines play settings after flags and the config file are merged.
type Config struct {
	Preset         string
	Sides          []string
	DictionaryPath string
	Record         bool
	LogLevel       string
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	Puzzle string
	Since  *time.Time
	Last   int
	Top    int
}

// GameRecord captures a finished or abandoned game.
type GameRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Puzzle     string
	Board      string
	K          int
	N          int
	Words      int
	Consumed   int
	Total      int
	Won        bool
	DurationMs int64
}

// WordRecord stores one accepted word of a game.
type WordRecord struct {
	Seq  int
	Word string
	Path string
}

// GameAggregate summarizes a stored game for reporting.
type GameAggregate struct {
	GameID     int64
	EndedAt    time.Time
	Puzzle     string
	Words      int
	Consumed   int
	Total      int
	Won        bool
	DurationMs int64
}

// WordAggregate counts how often a word was accepted.
type WordAggregate struct {
	Word  string
	Count int
}
