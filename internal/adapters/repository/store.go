// Package repository keeps the matches currently being played.
//
// Matches live only in process memory; a restart discards them.
package repository

import (
	"context"

	"github.com/okian/courtside/internal/domain/match"
)

// Store provides access to active matches by id.
type Store interface {
	// Create registers m and returns its new id.
	// Returns ErrCapacity when the store is full.
	Create(ctx context.Context, m *match.State) (string, error)

	// Get returns the match with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*match.State, error)

	// Remove deletes the match with id and returns it, or ErrNotFound.
	Remove(ctx context.Context, id string) (*match.State, error)

	// Count returns the number of active matches.
	Count(ctx context.Context) int
}
