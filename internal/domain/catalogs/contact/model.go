// Package contact provides the Contact catalog: vendors and customers
// referenced by purchase, sales, and payment documents.
package contact

import (
	"context"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
)

// Contact represents a vendor, a customer, or both.
type Contact struct {
	entity.Catalog

	// IsVendor marks the contact usable on purchase documents
	IsVendor bool `db:"is_vendor" json:"isVendor"`

	// IsCustomer marks the contact usable on sales documents
	IsCustomer bool `db:"is_customer" json:"isCustomer"`

	// TaxNumber is the tax registration number
	TaxNumber *string `db:"tax_number" json:"taxNumber,omitempty"`

	Email   *string `db:"email" json:"email,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`
}

// NewContact creates a new Contact with required fields.
func NewContact(code, name string) *Contact {
	return &Contact{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Contact) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !c.IsVendor && !c.IsCustomer {
		return apperror.NewValidation("contact must be a vendor, a customer, or both").
			WithDetail("field", "isVendor")
	}

	return nil
}
