// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Store errors. User-visible text never travels as an error: replies and
// hints are ordinary values, errors stay operator-facing.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)
