// Package repository persists per-sport tables as CSV snapshots.
package repository

import (
	"context"

	"github.com/okian/statsboard/internal/domain/dataset"
)

// Store reads and replaces the snapshot of a sport.
type Store interface {
	// Save replaces the snapshot of sport with t and returns the path written.
	Save(ctx context.Context, sport string, t *dataset.Table) (string, error)

	// Load reads the snapshot of sport. Returns ErrNotFound if none exists.
	Load(ctx context.Context, sport string) (*dataset.Table, error)

	// Path returns where the snapshot of sport lives.
	Path(sport string) (string, error)
}
