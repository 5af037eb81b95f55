package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Storage failures surface as one of two sentinels so callers can distinguish
// an unreachable medium from malformed persisted data. Absent records are not
// errors; lookups return nil instead.
var (
	ErrUnavailable = errors.New("storage unavailable")
	ErrCorrupted   = errors.New("storage corrupted")
)

func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrCorrupt, sqlite3.ErrNotADB, sqlite3.ErrFormat:
			return fmt.Errorf("%w: %v", ErrCorrupted, err)
		default:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	// Non-driver failures on a readable medium are scan/decode problems,
	// i.e. the stored data itself is bad.
	return fmt.Errorf("%w: %v", ErrCorrupted, err)
}
