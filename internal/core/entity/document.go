package entity

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: PurchaseInvoice, SalesDelivery, PayablePayment, CashTransfer.
type Document struct {
	BaseDocument

	// Number is the document reference number (auto-generated, unique within type)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// OrganizationID is the owning organization (required for multi-org support)
	OrganizationID string `db:"organization_id" json:"organizationId"`

	// Description is an optional user note shown on the journal
	Description string `db:"description" json:"description,omitempty"`
}

// NewDocument creates a new Document with generated ID.
// In database-per-tenant architecture, tenantID is not required.
func NewDocument(organizationID string) Document {
	return Document{
		BaseDocument:   NewBaseDocument(),
		Date:           time.Now().UTC(),
		OrganizationID: organizationID,
	}
}

// Validate implements the Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.OrganizationID == "" {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// IsBackdated checks if the document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// --- posting.Source default implementations ---
// Concrete document types only need GetDocumentType, GetTotalAmount and
// BuildJournal on top of these.

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}

// GetReferenceNo returns the document reference number.
func (d *Document) GetReferenceNo() string {
	return d.Number
}

// SetReferenceNo assigns the document reference number.
func (d *Document) SetReferenceNo(number string) {
	d.Number = number
}

// GetDate returns the document business date.
func (d *Document) GetDate() time.Time {
	return d.Date
}

// GetDescription returns the document description.
func (d *Document) GetDescription() string {
	return d.Description
}

// GetCreatedBy returns the creating user.
func (d *Document) GetCreatedBy() string {
	return d.CreatedBy
}
