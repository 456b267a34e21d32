package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dltoledo/pautapanel/internal/domain/model"
	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
	"github.com/dltoledo/pautapanel/internal/metrics"
)

// commitMessage is the fixed message attached to every dataset replacement.
const commitMessage = "Atualização automática da base de audiências"

// SyncService orchestrates the read-cache-invalidate cycle and the
// conflict-safe replacement of the remote dataset. It owns the TableCache in
// front of its own read path and broadcasts a change signal after every
// successful replacement so dependent views never show a stale table.
type SyncService struct {
	store   driven.TableStore
	uploads driven.UploadStore
	cache   *TableCache
	now     func() time.Time
	metrics *metrics.Metrics

	version atomic.Int64

	mu   sync.Mutex
	subs []chan struct{}
}

// NewSyncService creates the sync core. uploads may be nil when no audit log
// is configured; every other dependency is required.
func NewSyncService(
	store driven.TableStore,
	uploads driven.UploadStore,
	cacheTTL time.Duration,
	now func() time.Time,
	m *metrics.Metrics,
) *SyncService {
	s := &SyncService{
		store:   store,
		uploads: uploads,
		now:     now,
		metrics: m,
	}
	s.cache = NewTableCache(s.FetchTable, cacheTTL, now, m)
	return s
}

// Cache exposes the table cache for invalidation by collaborators
// (the access gate invalidates it on every key entry).
func (s *SyncService) Cache() *TableCache {
	return s.cache
}

// Table returns the current table through the cache.
func (s *SyncService) Table(ctx context.Context) (model.Table, error) {
	return s.cache.GetOrFetch(ctx)
}

// FetchTable loads the dataset from the remote store, bypassing the cache:
// download, parse with separator detection, normalize, derive the day key,
// and sort ascending by (day, room, timestamp).
func (s *SyncService) FetchTable(ctx context.Context) (model.Table, error) {
	s.metrics.TableFetches.Inc()

	data, err := s.store.Download(ctx)
	if err != nil {
		s.metrics.FetchErrors.Inc()
		return model.Table{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	rows, err := parseHearings(data)
	if err != nil {
		s.metrics.FetchErrors.Inc()
		return model.Table{}, err
	}

	sortRows(rows)
	return model.Table{Rows: rows}, nil
}

// ReplaceTable overwrites the remote dataset wholesale using optimistic
// concurrency: read the current revision, submit with it attached, and on a
// revision conflict re-read and resubmit exactly once. A second conflict or
// any other failure surfaces as ErrWriteFailed. On success the cache is
// invalidated, an audit entry is recorded, and subscribers are notified.
func (s *SyncService) ReplaceTable(ctx context.Context, content []byte) error {
	sha, _, err := s.store.Revision(ctx)
	if err != nil {
		s.metrics.UploadErrors.Inc()
		return fmt.Errorf("%w: reading current revision: %w", ErrWriteFailed, err)
	}

	newSHA, err := s.store.Put(ctx, content, commitMessage, sha)
	if errors.Is(err, driven.ErrRevisionConflict) {
		s.metrics.UploadConflicts.Inc()
		slog.Info("revision conflict on dataset replacement, retrying once")

		sha, _, err = s.store.Revision(ctx)
		if err != nil {
			s.metrics.UploadErrors.Inc()
			return fmt.Errorf("%w: re-reading revision after conflict: %w", ErrWriteFailed, err)
		}
		newSHA, err = s.store.Put(ctx, content, commitMessage, sha)
	}
	if err != nil {
		s.metrics.UploadErrors.Inc()
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.cache.Invalidate()
	s.metrics.Uploads.Inc()

	if s.uploads != nil {
		rec := model.UploadRecord{
			SizeBytes:  int64(len(content)),
			NewSHA:     newSHA,
			Message:    commitMessage,
			UploadedAt: s.now(),
		}
		// Audit failure must not fail an already-committed replacement.
		if err := s.uploads.Record(ctx, rec); err != nil {
			slog.Warn("recording upload audit entry failed", "error", err)
		}
	}

	s.notifyChanged()
	slog.Info("dataset replaced", "size_bytes", len(content), "sha", newSHA)
	return nil
}

// Version returns a counter incremented on every successful replacement.
// Pollers compare it to detect that the table changed.
func (s *SyncService) Version() int64 {
	return s.version.Load()
}

// Subscribe returns a channel that receives one signal per successful
// replacement. The channel is buffered; a slow subscriber coalesces signals
// rather than blocking the write path.
func (s *SyncService) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *SyncService) notifyChanged() {
	s.version.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// sortRows orders rows ascending by (day, room, timestamp). The day key is
// compared as a date, not as a string, so ordering stays chronological
// across month boundaries.
func sortRows(rows []model.Hearing) {
	sort.SliceStable(rows, func(i, j int) bool {
		di := rows[i].When.Truncate(24 * time.Hour)
		dj := rows[j].When.Truncate(24 * time.Hour)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if rows[i].Room != rows[j].Room {
			return rows[i].Room < rows[j].Room
		}
		return rows[i].When.Before(rows[j].When)
	})
}
