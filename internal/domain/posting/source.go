package posting

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// Source is implemented by every document type that produces a journal.
// entity.Document provides default implementations for the identity
// getters; concrete documents add GetDocumentType, GetTotalAmount and
// BuildJournal.
type Source interface {
	GetID() id.ID

	// GetDocumentType returns the stable type name used in the journal
	// source key, e.g. "sales_invoice".
	GetDocumentType() string

	GetReferenceNo() string
	GetDate() time.Time
	GetDescription() string
	GetCreatedBy() string

	// GetTotalAmount returns the document total, used by guard rules.
	GetTotalAmount() types.Money

	// BuildJournal produces the journal draft for the document's current
	// state. A nil draft (with nil error) means the document does not
	// post at all, e.g. a beginning-balance receipt.
	BuildJournal(ctx context.Context, r Resolver) (*Draft, error)
}
