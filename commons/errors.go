// SPDX-License-Identifier: GPL-3.0-only

package commons

import "errors"

// Outcomes of ingest and lookup. Layers wrap these with context and callers
// match them with errors.Is.
var (
	ErrMalformedDocument  = errors.New("malformed document")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrNotFound           = errors.New("record not found")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
)
