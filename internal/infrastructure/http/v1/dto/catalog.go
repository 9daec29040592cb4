package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
	"moneta/internal/domain/catalogs/account"
	"moneta/internal/domain/catalogs/category"
	"moneta/internal/domain/catalogs/contact"
	"moneta/internal/domain/catalogs/department"
	"moneta/internal/domain/catalogs/product"
	"moneta/internal/domain/catalogs/project"
)

// parseOptionalID converts a nullable string field to an ID reference.
func parseOptionalID(field string, s *string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").
			WithDetail("field", field).
			WithDetail("value", *s)
	}
	return &parsed, nil
}

// catalogFields are the base fields shared by all catalog requests.
type catalogFields struct {
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
	IsFolder bool    `json:"isFolder"`
}

// --- Account ---

// AccountRequest creates or updates a chart-of-accounts entry.
type AccountRequest struct {
	catalogFields

	Class       string  `json:"class" binding:"required"`
	IsCashBank  bool    `json:"isCashBank"`
	Description *string `json:"description"`
}

// ToEntity builds a new Account from the request.
func (r AccountRequest) ToEntity() (*account.Account, error) {
	a := account.NewAccount(r.Code, r.Name, account.Class(r.Class))
	return a, r.ApplyTo(a)
}

// ApplyTo copies request fields onto an existing Account.
func (r AccountRequest) ApplyTo(a *account.Account) error {
	a.Code = r.Code
	a.Name = r.Name
	a.IsFolder = r.IsFolder
	if r.ParentID != nil {
		a.SetParent(*r.ParentID)
	} else {
		a.ParentID = nil
	}
	a.Class = account.Class(r.Class)
	a.IsCashBank = r.IsCashBank
	a.Description = r.Description
	return nil
}

// --- Category ---

// CategoryRequest creates or updates a product category with its
// posting account mappings. Every mapping is optional.
type CategoryRequest struct {
	catalogFields

	PurchaseAccountID        *string `json:"purchaseAccountId"`
	SalesAccountID           *string `json:"salesAccountId"`
	InventoryAccountID       *string `json:"inventoryAccountId"`
	PurchaseReceiptAccountID *string `json:"purchaseReceiptAccountId"`
	SalesDeliveryAccountID   *string `json:"salesDeliveryAccountId"`
}

// ToEntity builds a new Category from the request.
func (r CategoryRequest) ToEntity() (*category.Category, error) {
	c := category.NewCategory(r.Code, r.Name)
	return c, r.ApplyTo(c)
}

// ApplyTo copies request fields onto an existing Category.
func (r CategoryRequest) ApplyTo(c *category.Category) error {
	c.Code = r.Code
	c.Name = r.Name
	c.IsFolder = r.IsFolder
	if r.ParentID != nil {
		c.SetParent(*r.ParentID)
	} else {
		c.ParentID = nil
	}

	var err error
	if c.PurchaseAccountID, err = parseOptionalID("purchaseAccountId", r.PurchaseAccountID); err != nil {
		return err
	}
	if c.SalesAccountID, err = parseOptionalID("salesAccountId", r.SalesAccountID); err != nil {
		return err
	}
	if c.InventoryAccountID, err = parseOptionalID("inventoryAccountId", r.InventoryAccountID); err != nil {
		return err
	}
	if c.PurchaseReceiptAccountID, err = parseOptionalID("purchaseReceiptAccountId", r.PurchaseReceiptAccountID); err != nil {
		return err
	}
	if c.SalesDeliveryAccountID, err = parseOptionalID("salesDeliveryAccountId", r.SalesDeliveryAccountID); err != nil {
		return err
	}
	return nil
}

// --- Product ---

// ProductRequest creates or updates a product.
type ProductRequest struct {
	catalogFields

	SKU             *string         `json:"sku"`
	CategoryID      *string         `json:"categoryId"`
	IsStockTracking bool            `json:"isStockTracking"`
	DefaultPrice    decimal.Decimal `json:"defaultPrice"`
	DefaultCost     decimal.Decimal `json:"defaultCost"`
	Unit            string          `json:"unit"`
	Description     *string         `json:"description"`
}

// ToEntity builds a new Product from the request.
func (r ProductRequest) ToEntity() (*product.Product, error) {
	p := product.NewProduct(r.Code, r.Name)
	return p, r.ApplyTo(p)
}

// ApplyTo copies request fields onto an existing Product.
func (r ProductRequest) ApplyTo(p *product.Product) error {
	p.Code = r.Code
	p.Name = r.Name
	p.IsFolder = r.IsFolder
	if r.ParentID != nil {
		p.SetParent(*r.ParentID)
	} else {
		p.ParentID = nil
	}

	categoryID, err := parseOptionalID("categoryId", r.CategoryID)
	if err != nil {
		return err
	}
	p.CategoryID = categoryID
	p.SKU = r.SKU
	p.IsStockTracking = r.IsStockTracking
	p.DefaultPrice = r.DefaultPrice
	p.DefaultCost = r.DefaultCost
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.Description = r.Description
	return nil
}

// --- Contact ---

// ContactRequest creates or updates a vendor or customer.
type ContactRequest struct {
	catalogFields

	IsVendor   bool    `json:"isVendor"`
	IsCustomer bool    `json:"isCustomer"`
	TaxNumber  *string `json:"taxNumber"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

// ToEntity builds a new Contact from the request.
func (r ContactRequest) ToEntity() (*contact.Contact, error) {
	c := contact.NewContact(r.Code, r.Name)
	return c, r.ApplyTo(c)
}

// ApplyTo copies request fields onto an existing Contact.
func (r ContactRequest) ApplyTo(c *contact.Contact) error {
	c.Code = r.Code
	c.Name = r.Name
	c.IsFolder = r.IsFolder
	if r.ParentID != nil {
		c.SetParent(*r.ParentID)
	} else {
		c.ParentID = nil
	}
	c.IsVendor = r.IsVendor
	c.IsCustomer = r.IsCustomer
	c.TaxNumber = r.TaxNumber
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	return nil
}

// --- Department ---

// DepartmentRequest creates or updates a department.
type DepartmentRequest struct {
	catalogFields
}

// ToEntity builds a new Department from the request.
func (r DepartmentRequest) ToEntity() (*department.Department, error) {
	d := department.NewDepartment(r.Code, r.Name)
	return d, r.ApplyTo(d)
}

// ApplyTo copies request fields onto an existing Department.
func (r DepartmentRequest) ApplyTo(d *department.Department) error {
	d.Code = r.Code
	d.Name = r.Name
	d.IsFolder = r.IsFolder
	if r.ParentID != nil {
		d.SetParent(*r.ParentID)
	} else {
		d.ParentID = nil
	}
	return nil
}

// --- Project ---

// ProjectRequest creates or updates a project.
type ProjectRequest struct {
	catalogFields

	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// ToEntity builds a new Project from the request.
func (r ProjectRequest) ToEntity() (*project.Project, error) {
	p := project.NewProject(r.Code, r.Name)
	return p, r.ApplyTo(p)
}

// ApplyTo copies request fields onto an existing Project.
func (r ProjectRequest) ApplyTo(p *project.Project) error {
	p.Code = r.Code
	p.Name = r.Name
	p.IsFolder = r.IsFolder
	if r.ParentID != nil {
		p.SetParent(*r.ParentID)
	} else {
		p.ParentID = nil
	}
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
	return nil
}
