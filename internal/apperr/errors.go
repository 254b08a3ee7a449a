// Package apperr defines the sentinel errors shared by every membank command.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a required source path or category does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a scaffold destination is already populated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument is returned when a required CLI argument is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnreadable is returned when one or more files could not be read during
	// indexing or searching. The wrapping error lists the affected paths.
	ErrUnreadable = errors.New("unreadable file")
)
