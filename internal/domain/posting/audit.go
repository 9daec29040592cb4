package posting

import (
	"context"
	"time"

	"moneta/internal/core/id"
)

// EventKind classifies posting audit events.
type EventKind string

const (
	// EventLegSkipped records an optional leg dropped for lack of an
	// account mapping.
	EventLegSkipped EventKind = "leg_skipped"

	// EventUnbalanced records a journal whose debit and credit totals
	// disagree after posting.
	EventUnbalanced EventKind = "journal_unbalanced"

	// EventGuardRejected records a document blocked by a guard rule.
	EventGuardRejected EventKind = "guard_rejected"
)

// Event is one posting audit record. Details carries the free-form
// payload that the store compresses.
type Event struct {
	Kind       EventKind      `json:"kind"`
	SourceType string         `json:"sourceType"`
	SourceID   id.ID          `json:"sourceId"`
	JournalID  *id.ID         `json:"journalId,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// AuditSink receives posting audit events. Recording must never fail a
// posting: implementations log and swallow their own errors.
type AuditSink interface {
	Record(ctx context.Context, event Event)
}

// NopSink discards all events.
type NopSink struct{}

// Record implements AuditSink.
func (NopSink) Record(ctx context.Context, event Event) {}
