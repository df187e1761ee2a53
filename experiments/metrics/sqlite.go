package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS matchups (
	run TEXT NOT NULL,
	id INTEGER NOT NULL,
	tier1 TEXT NOT NULL,
	tier2 TEXT NOT NULL,
	PRIMARY KEY (run, id)
);
CREATE TABLE IF NOT EXISTS games (
	run TEXT NOT NULL,
	id INTEGER NOT NULL,
	matchup INTEGER NOT NULL,
	seed TEXT NOT NULL,
	starting_player INTEGER NOT NULL,
	winner TEXT NOT NULL,
	start_time TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	total_moves INTEGER NOT NULL,
	walls_placed INTEGER NOT NULL,
	PRIMARY KEY (run, id)
);
CREATE TABLE IF NOT EXISTS moves (
	run TEXT NOT NULL,
	game INTEGER NOT NULL,
	step INTEGER NOT NULL,
	player INTEGER NOT NULL,
	move TEXT NOT NULL,
	depth INTEGER NOT NULL,
	duration_us INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	cutoffs INTEGER NOT NULL,
	table_hits INTEGER NOT NULL,
	immediate_win INTEGER NOT NULL,
	explored INTEGER NOT NULL,
	PRIMARY KEY (run, game, step)
);`

// SQLiteSink appends benchmark runs to a SQLite database. Every run is keyed
// by its start timestamp so several runs can share one file.
type SQLiteSink struct {
	db  *sql.DB
	run string
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteSink{
		db:  db,
		run: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func (s *SQLiteSink) Run() string {
	return s.run
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write stores the matchups, games and moves of a run in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, matchups []Matchup, games []GameRecord, moves []MoveRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range matchups {
		_, err := tx.ExecContext(ctx, `INSERT INTO matchups (run, id, tier1, tier2) VALUES (?, ?, ?, ?)`,
			s.run, m.ID, m.Tier1, m.Tier2)
		if err != nil {
			return fmt.Errorf("failed to insert matchup %d: %w", m.ID, err)
		}
	}

	for _, g := range games {
		_, err := tx.ExecContext(ctx, `INSERT INTO games
			(run, id, matchup, seed, starting_player, winner, start_time, duration_ms, total_moves, walls_placed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.run, g.ID, g.Matchup, fmt.Sprint(g.Seed), g.StartingPlayer, g.Winner,
			g.StartTime.UTC().Format(time.RFC3339Nano), g.Duration.Milliseconds(), g.TotalMoves, g.WallsPlaced)
		if err != nil {
			return fmt.Errorf("failed to insert game %d: %w", g.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO moves
		(run, game, step, player, move, depth, duration_us, nodes, cutoffs, table_hits, immediate_win, explored)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare move insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range moves {
		_, err := stmt.ExecContext(ctx, s.run, m.Game, m.Step, m.Player, m.Move, m.Depth,
			m.Duration.Microseconds(), m.Nodes, m.Cutoffs, m.TableHits, m.ImmediateWin, m.Explored)
		if err != nil {
			return fmt.Errorf("failed to insert move %d of game %d: %w", m.Step, m.Game, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
