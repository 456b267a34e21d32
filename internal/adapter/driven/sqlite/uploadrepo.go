package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dltoledo/pautapanel/internal/domain/model"
	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UploadStore = (*UploadRepo)(nil)

// UploadRepo is the SQLite implementation of the UploadStore port interface.
type UploadRepo struct {
	db *DB
}

// NewUploadRepo creates a new UploadRepo.
func NewUploadRepo(db *DB) *UploadRepo {
	return &UploadRepo{db: db}
}

// Record appends one audit entry for a successful dataset replacement.
func (r *UploadRepo) Record(ctx context.Context, rec model.UploadRecord) error {
	const query = `INSERT INTO uploads (size_bytes, new_sha, message, uploaded_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.SizeBytes,
		rec.NewSHA,
		rec.Message,
		rec.UploadedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListRecent returns up to limit audit entries, newest first.
func (r *UploadRepo) ListRecent(ctx context.Context, limit int) ([]model.UploadRecord, error) {
	const query = `SELECT id, size_bytes, new_sha, message, uploaded_at
		FROM uploads ORDER BY uploaded_at DESC, id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var recs []model.UploadRecord
	for rows.Next() {
		var rec model.UploadRecord
		var uploadedAt string
		if err := rows.Scan(&rec.ID, &rec.SizeBytes, &rec.NewSHA, &rec.Message, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}

		rec.UploadedAt, err = parseTime(uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse uploaded_at: %w", err)
		}

		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}

	return recs, nil
}

// parseTime handles both RFC3339 (written by Record) and the space-separated
// form SQLite's CURRENT_TIMESTAMP produces.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
