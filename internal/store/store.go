// Package store defines transcript persistence and its backends.
package store

import (
	"context"

	"godchat/internal/domain"
)

// Store is the append-only transcript store. Writes are durable before
// Append returns; there is no write-behind buffering, so a turn visible to
// the next History call is guaranteed once Append succeeds. Append never
// retries internally; the caller decides.
type Store interface {
	// Append persists one turn and returns it with the store-assigned ID
	// and creation timestamp filled in.
	Append(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Turn, error)

	// History returns up to limit turns for the session in ascending
	// created_at order. When the session holds more than limit turns, the
	// most recent limit are returned (still oldest-first) so a bounded
	// context window sees the latest conversation. An unknown session
	// yields an empty slice, not an error.
	History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)

	Close() error
}
