// Package posting implements the ledger posting engine: it turns
// business documents into balanced journal entries and keeps them in
// sync over the document lifecycle.
package posting

import (
	"moneta/internal/core/id"
)

// WellKnownDefaultDepartmentID is the department every tenant database
// is seeded with. Header-level journal legs that have no department of
// their own are booked here.
var WellKnownDefaultDepartmentID = id.MustParse("00000000-0000-0000-0000-000000000001")

// Config holds posting engine settings.
type Config struct {
	// DefaultDepartmentID is assigned to header-level legs and to any
	// line spec that does not carry its own department.
	DefaultDepartmentID id.ID

	// BalanceAudit enables the post-write balance check that records an
	// audit event for journals whose sides disagree. The imbalance is
	// reported, never repaired.
	BalanceAudit bool
}

// DefaultConfig returns the standard posting configuration.
func DefaultConfig() Config {
	return Config{
		DefaultDepartmentID: WellKnownDefaultDepartmentID,
		BalanceAudit:        true,
	}
}
