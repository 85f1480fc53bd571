package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
	// ErrCorruptStore means the report file no longer lines up with its header.
	ErrCorruptStore = errors.New("report store is corrupt")
	// ErrStatusUnsupported is returned by UpdateStatus on a store without a status column.
	ErrStatusUnsupported = errors.New("report store has no status column")
)
