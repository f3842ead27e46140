package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"godchat/internal/domain"
)

// PostgresStore implements Store on Postgres via pgx. It mirrors the same
// append-only turns table as the SQLite backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initTurnSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initTurnSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			seq BIGSERIAL PRIMARY KEY,
			turn_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session_created ON turns (session_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init turn schema: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Append persists one turn. The write is committed before return.
func (s *PostgresStore) Append(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Turn, error) {
	turn := &domain.Turn{
		ID:        "turn_" + uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO turns (turn_id, session_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		turn.ID, turn.SessionID, string(turn.Role), turn.Content, turn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert turn: %w", err)
	}

	return turn, nil
}

// History returns the most recent limit turns, oldest-first.
func (s *PostgresStore) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	query := `SELECT turn_id, session_id, role, content, created_at FROM turns
		WHERE session_id = $1 ORDER BY created_at ASC, seq ASC`
	args := []interface{}{sessionID}

	if limit > 0 {
		query = `SELECT turn_id, session_id, role, content, created_at FROM (
			SELECT turn_id, session_id, role, content, created_at, seq FROM turns
			WHERE session_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2
		) latest ORDER BY created_at ASC, seq ASC`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		var role string
		if err := rows.Scan(&t.ID, &t.SessionID, &role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Role = domain.Role(role)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
