// Package driven defines the driven ports (outbound dependencies) of the
// application core.
package driven

import (
	"context"
	"errors"
)

// ErrRevisionConflict is returned by TableStore.Put when the stored revision
// changed between the caller's revision read and the submission. The sync
// engine recovers from it with exactly one retry.
var ErrRevisionConflict = errors.New("table store: revision conflict")

// TableStore is the driven port for the versioned remote file holding the
// schedule dataset. Each stored revision is addressed by an opaque content
// sha; the sha is used only for optimistic-concurrency control on writes.
type TableStore interface {
	// Download returns the raw bytes of the latest revision.
	Download(ctx context.Context) ([]byte, error)

	// Revision returns the current content sha. exists is false when the
	// file has never been written (first-ever upload).
	Revision(ctx context.Context) (sha string, exists bool, err error)

	// Put replaces the file wholesale. sha must be the revision the caller
	// read immediately before, or "" on first write. Returns the new
	// revision sha on success, or ErrRevisionConflict when the store's
	// revision moved underneath the caller.
	Put(ctx context.Context, content []byte, message, sha string) (newSHA string, err error)
}
