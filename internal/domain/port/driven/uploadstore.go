package driven

import (
	"context"

	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// UploadStore is the driven port for the dataset replacement audit log.
type UploadStore interface {
	// Record appends one audit entry for a successful replacement.
	Record(ctx context.Context, rec model.UploadRecord) error

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.UploadRecord, error)
}
