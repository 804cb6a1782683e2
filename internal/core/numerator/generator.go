// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in pkg/numerator.
package numerator

import (
	"context"
	"time"
)

// Generator generates sequential document numbers.
// Pattern: PREFIX-YEAR-XXXXX (e.g., FV-2026-00001).
type Generator interface {
	// GetNextNumber generates the next document number.
	// Supports Strict (DB-level) and Cached (memory-level) strategies.
	GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error)

	// SetNextNumber sets the next number value (for migration purposes).
	SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error
}
