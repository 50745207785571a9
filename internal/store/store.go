package store

import (
	"context"

	"github.com/ugaemi/spotlight-server/internal/result"
)

// ResultStore defines the interface for persistent session results.
type ResultStore interface {
	// Save inserts a finished session result.
	Save(ctx context.Context, res *result.Result) error
	// Top returns the best results by score, highest first.
	Top(ctx context.Context, limit int) ([]*result.Result, error)
	// FindByID looks up a result by id. Returns nil if it does not exist.
	FindByID(ctx context.Context, id string) (*result.Result, error)
	// Close releases database resources.
	Close() error
}
