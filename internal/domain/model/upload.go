package model

import "time"

// UploadRecord is one entry of the dataset replacement audit log.
type UploadRecord struct {
	ID         int64
	SizeBytes  int64
	NewSHA     string
	Message    string
	UploadedAt time.Time
}
