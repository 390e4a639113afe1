package repository

import (
	"context"

	"speech2text/internal/app/model"
)

// TranscriptDAO persists transcripts in a single table. The store is the
// only source of truth; implementations must not cache rows.
type TranscriptDAO interface {
	Close() error

	// CreatePlaceholder inserts a row with empty text and status processing
	// and returns the store-assigned id.
	CreatePlaceholder(ctx context.Context) (int64, error)

	// Update writes the final text and status of a processing row.
	Update(ctx context.Context, id int64, update model.TranscriptUpdate) error

	// GetByID returns errors.ErrNotFound when no row has the id.
	GetByID(ctx context.Context, id int64) (*model.Transcript, error)

	// List returns every row, newest first.
	List(ctx context.Context) ([]model.Transcript, error)

	// Delete returns errors.ErrNotFound when no row was removed.
	Delete(ctx context.Context, id int64) error
}
