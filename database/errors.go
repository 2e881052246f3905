package database

import (
	"errors"
)

// Errors.
var (
	ErrNotFound            = errors.New("database entry not found")
	ErrShuttingDown        = errors.New("database system is shutting down")
	ErrMalformedSnapshot   = errors.New("table snapshot is malformed")
	ErrUnsupportedSnapshot = errors.New("table snapshot version is not supported")
)
