// Package store handles SQLite persistence of finished games.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width UTC timestamps so that text comparison orders them.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for game history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			puzzle TEXT NOT NULL,
			board TEXT NOT NULL,
			k INTEGER NOT NULL,
			n INTEGER NOT NULL,
			words INTEGER NOT NULL,
			consumed INTEGER NOT NULL,
			total INTEGER NOT NULL,
			won INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_words (
			game_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			word TEXT NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (game_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_game_words_word ON game_words(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a game and its accepted words.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord, words []model.WordRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, puzzle, board, k, n, words, consumed, total, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.StartedAt.UTC().Format(timeLayout),
		game.EndedAt.UTC().Format(timeLayout),
		game.Puzzle,
		game.Board,
		game.K,
		game.N,
		game.Words,
		game.Consumed,
		game.Total,
		boolToInt(game.Won),
		game.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(words) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_words (game_id, seq, word, path) VALUES (?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, w := range words {
			if _, err = stmt.ExecContext(ctx, id, w.Seq, w.Word, w.Path); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListGames returns game aggregates filtered by stats config, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Puzzle != "" {
		clauses = append(clauses, "puzzle = ?")
		args = append(args, cfg.Puzzle)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, puzzle, words, consumed, total, won, duration_ms
		FROM games
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		var won int
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Puzzle, &agg.Words, &agg.Consumed, &agg.Total, &won, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Won = won != 0
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// ListWords returns the accepted words of one game in order.
func (s *Store) ListWords(ctx context.Context, gameID int64) ([]model.WordRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, word, path FROM game_words WHERE game_id = ? ORDER BY seq ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []model.WordRecord
	for rows.Next() {
		var w model.WordRecord
		if err := rows.Scan(&w.Seq, &w.Word, &w.Path); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// TopWords counts accepted words across games, most frequent first.
func (s *Store) TopWords(ctx context.Context, gameIDs []int64, limit int) ([]model.WordAggregate, error) {
	if len(gameIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	placeholders := make([]string, len(gameIDs))
	args := make([]any, 0, len(gameIDs)+1)
	for i, id := range gameIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT word, COUNT(*) AS uses
		FROM game_words
		WHERE game_id IN (%s)
		GROUP BY word
		ORDER BY uses DESC, word ASC
		LIMIT ?`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Count); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
