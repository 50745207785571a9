package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugaemi/spotlight-server/internal/result"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_results (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    session_code TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    delivered INTEGER NOT NULL DEFAULT 0,
    caught_by_light INTEGER NOT NULL DEFAULT 0,
    lost INTEGER NOT NULL DEFAULT 0,
    reason TEXT NOT NULL DEFAULT '',
    duration_ms BIGINT NOT NULL DEFAULT 0,
    finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_session_results_score ON session_results(score DESC);
`

const selectColumns = `id, nickname, session_code, score, level, delivered, caught_by_light, lost, reason, duration_ms, finished_at`

// MaxTop caps the number of rows Top returns.
const MaxTop = 100

// PostgresStore implements ResultStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Save inserts a finished session result.
func (s *PostgresStore) Save(ctx context.Context, res *result.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO session_results (`+selectColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		res.ID, res.Nickname, res.SessionCode, res.Score, res.Level, res.Delivered,
		res.CaughtByLight, res.Lost, string(res.Reason), res.Duration.Milliseconds(), res.FinishedAt)
	return err
}

// Top returns the best results by score, highest first.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]*result.Result, error) {
	if limit <= 0 || limit > MaxTop {
		limit = MaxTop
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM session_results
		 ORDER BY score DESC, finished_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*result.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// FindByID looks up a result by id.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*result.Result, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM session_results WHERE id = $1`, id)

	res, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanResult(row pgx.Row) (*result.Result, error) {
	var (
		res        result.Result
		reason     string
		durationMs int64
	)
	err := row.Scan(&res.ID, &res.Nickname, &res.SessionCode, &res.Score, &res.Level,
		&res.Delivered, &res.CaughtByLight, &res.Lost, &reason, &durationMs, &res.FinishedAt)
	if err != nil {
		return nil, err
	}
	res.Reason = result.Reason(reason)
	res.Duration = time.Duration(durationMs) * time.Millisecond
	return &res, nil
}
