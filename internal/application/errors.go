// Package application contains the sync core: the table cache, the sync
// service orchestrating reads and conflict-safe writes of the remote
// dataset, and the access key gate.
package application

import "errors"

// Sentinel errors surfaced by the sync core. All are terminal for the
// triggering interaction; only revision conflicts are recovered internally
// (by a single retry inside ReplaceTable) and never reach callers directly.
var (
	// ErrRemoteUnavailable means the remote dataset could not be retrieved.
	ErrRemoteUnavailable = errors.New("schedule dataset unavailable")

	// ErrUnparsableTable means none of the separator strategies produced a
	// structurally valid parse of the dataset.
	ErrUnparsableTable = errors.New("schedule dataset is not parsable as delimited text")

	// ErrMalformedTimestamp means a row's timestamp cell could not be
	// parsed while deriving the day grouping key. The whole load aborts.
	ErrMalformedTimestamp = errors.New("schedule dataset contains a malformed timestamp")

	// ErrWriteFailed means a dataset replacement did not succeed after the
	// conflict retry was exhausted, or failed for any non-conflict reason.
	ErrWriteFailed = errors.New("dataset replacement failed")
)
