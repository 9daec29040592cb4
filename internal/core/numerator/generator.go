// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in the infrastructure layer.
package numerator

import (
	"context"
	"time"
)

// Generator generates sequential document numbers.
//
// In database-per-tenant mode implementations obtain database
// connections from context via tenant.PoolFromContext.
type Generator interface {
	// GetNextNumber generates the next document number,
	// e.g. SI-2026-00001.
	GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error)

	// SetNextNumber sets the next number value (for migrations).
	SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error
}
