package dto

import (
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/documents/cash_transfer"
	"moneta/internal/domain/documents/expense"
	"moneta/internal/domain/documents/income"
	"moneta/internal/domain/documents/payable_payment"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/documents/purchase_receipt"
	"moneta/internal/domain/documents/receivable_payment"
	"moneta/internal/domain/documents/sales_delivery"
	"moneta/internal/domain/documents/sales_invoice"
)

// parseID converts a required string field to an ID.
func parseID(field, s string) (id.ID, error) {
	parsed, err := id.Parse(s)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id").
			WithDetail("field", field).
			WithDetail("value", s)
	}
	return parsed, nil
}

// documentFields are the header fields shared by all document requests.
// Totals are never accepted from the client; they are recalculated from
// the lines before posting.
type documentFields struct {
	Date           *time.Time `json:"date"`
	OrganizationID string     `json:"organizationId" binding:"required"`
	Description    string     `json:"description"`
}

func (f documentFields) applyHeader(d *entity.Document) {
	if f.Date != nil {
		d.Date = f.Date.UTC()
	}
	d.OrganizationID = f.OrganizationID
	d.Description = f.Description
}

// ProductLineRequest is one product row on a purchase or sales document.
type ProductLineRequest struct {
	ProductID    string         `json:"productId" binding:"required"`
	Quantity     types.Quantity `json:"quantity"`
	Price        types.Money    `json:"price"`
	DepartmentID *string        `json:"departmentId"`
	ProjectID    *string        `json:"projectId"`
	Note         string         `json:"note"`
}

// AccountLineRequest is one account row on an expense or income document.
type AccountLineRequest struct {
	AccountID    *string     `json:"accountId"`
	Amount       types.Money `json:"amount"`
	DepartmentID *string     `json:"departmentId"`
	ProjectID    *string     `json:"projectId"`
	Note         string      `json:"note"`
}

// AllocationRequest is one invoice allocation on a payment document.
type AllocationRequest struct {
	InvoiceID    string      `json:"invoiceId" binding:"required"`
	Amount       types.Money `json:"amount"`
	DepartmentID *string     `json:"departmentId"`
	ProjectID    *string     `json:"projectId"`
	Note         string      `json:"note"`
}

type lineRefs struct {
	departmentID *id.ID
	projectID    *id.ID
}

func parseLineRefs(departmentID, projectID *string) (lineRefs, error) {
	var refs lineRefs
	var err error
	if refs.departmentID, err = parseOptionalID("departmentId", departmentID); err != nil {
		return refs, err
	}
	if refs.projectID, err = parseOptionalID("projectId", projectID); err != nil {
		return refs, err
	}
	return refs, nil
}

// --- Purchase receipt ---

// PurchaseReceiptRequest creates or updates a purchase receipt.
type PurchaseReceiptRequest struct {
	documentFields

	VendorID    string               `json:"vendorId" binding:"required"`
	IsBeginning bool                 `json:"isBeginning"`
	Lines       []ProductLineRequest `json:"lines"`
}

// ToEntity builds a new PurchaseReceipt from the request.
func (r PurchaseReceiptRequest) ToEntity() (*purchase_receipt.PurchaseReceipt, error) {
	doc := purchase_receipt.NewPurchaseReceipt(r.OrganizationID, id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing PurchaseReceipt,
// replacing its lines wholesale.
func (r PurchaseReceiptRequest) ApplyTo(doc *purchase_receipt.PurchaseReceipt) error {
	r.applyHeader(&doc.Document)
	doc.IsBeginning = r.IsBeginning

	vendorID, err := parseID("vendorId", r.VendorID)
	if err != nil {
		return err
	}
	doc.VendorID = vendorID

	now := time.Now().UTC()
	doc.Lines = make([]purchase_receipt.ReceiptLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		productID, err := parseID("lines.productId", line.ProductID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, purchase_receipt.ReceiptLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    productID,
			Quantity:     line.Quantity,
			Price:        line.Price,
			Amount:       line.Price.Mul(line.Quantity.Decimal()),
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Purchase invoice ---

// PurchaseInvoiceRequest creates or updates a purchase invoice.
type PurchaseInvoiceRequest struct {
	documentFields

	VendorID  string               `json:"vendorId" binding:"required"`
	AccountID string               `json:"accountId" binding:"required"`
	IsReceipt bool                 `json:"isReceipt"`
	DueDate   *time.Time           `json:"dueDate"`
	TaxAmount types.Money          `json:"taxAmount"`
	Lines     []ProductLineRequest `json:"lines"`
}

// ToEntity builds a new PurchaseInvoice from the request.
func (r PurchaseInvoiceRequest) ToEntity() (*purchase_invoice.PurchaseInvoice, error) {
	doc := purchase_invoice.NewPurchaseInvoice(r.OrganizationID, id.Nil(), id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing PurchaseInvoice,
// replacing its lines wholesale.
func (r PurchaseInvoiceRequest) ApplyTo(doc *purchase_invoice.PurchaseInvoice) error {
	r.applyHeader(&doc.Document)
	doc.IsReceipt = r.IsReceipt
	doc.TaxAmount = r.TaxAmount
	if r.DueDate != nil {
		doc.DueDate = r.DueDate.UTC()
	} else {
		doc.DueDate = doc.Date.AddDate(0, 1, 0)
	}

	vendorID, err := parseID("vendorId", r.VendorID)
	if err != nil {
		return err
	}
	doc.VendorID = vendorID

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	now := time.Now().UTC()
	doc.Lines = make([]purchase_invoice.InvoiceLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		productID, err := parseID("lines.productId", line.ProductID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, purchase_invoice.InvoiceLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    productID,
			Quantity:     line.Quantity,
			Price:        line.Price,
			Amount:       line.Price.Mul(line.Quantity.Decimal()),
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Sales delivery ---

// SalesDeliveryRequest creates or updates a sales delivery. Line prices
// are the product costs: the delivery moves inventory, not revenue.
type SalesDeliveryRequest struct {
	documentFields

	CustomerID string               `json:"customerId" binding:"required"`
	Lines      []ProductLineRequest `json:"lines"`
}

// ToEntity builds a new SalesDelivery from the request.
func (r SalesDeliveryRequest) ToEntity() (*sales_delivery.SalesDelivery, error) {
	doc := sales_delivery.NewSalesDelivery(r.OrganizationID, id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing SalesDelivery,
// replacing its lines wholesale.
func (r SalesDeliveryRequest) ApplyTo(doc *sales_delivery.SalesDelivery) error {
	r.applyHeader(&doc.Document)

	customerID, err := parseID("customerId", r.CustomerID)
	if err != nil {
		return err
	}
	doc.CustomerID = customerID

	now := time.Now().UTC()
	doc.Lines = make([]sales_delivery.DeliveryLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		productID, err := parseID("lines.productId", line.ProductID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, sales_delivery.DeliveryLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    productID,
			Quantity:     line.Quantity,
			Cost:         line.Price,
			Amount:       line.Price.Mul(line.Quantity.Decimal()),
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Sales invoice ---

// SalesInvoiceRequest creates or updates a sales invoice.
type SalesInvoiceRequest struct {
	documentFields

	CustomerID string               `json:"customerId" binding:"required"`
	AccountID  string               `json:"accountId" binding:"required"`
	DueDate    *time.Time           `json:"dueDate"`
	TaxAmount  types.Money          `json:"taxAmount"`
	Lines      []ProductLineRequest `json:"lines"`
}

// ToEntity builds a new SalesInvoice from the request.
func (r SalesInvoiceRequest) ToEntity() (*sales_invoice.SalesInvoice, error) {
	doc := sales_invoice.NewSalesInvoice(r.OrganizationID, id.Nil(), id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing SalesInvoice,
// replacing its lines wholesale.
func (r SalesInvoiceRequest) ApplyTo(doc *sales_invoice.SalesInvoice) error {
	r.applyHeader(&doc.Document)
	doc.TaxAmount = r.TaxAmount
	if r.DueDate != nil {
		doc.DueDate = r.DueDate.UTC()
	} else {
		doc.DueDate = doc.Date.AddDate(0, 1, 0)
	}

	customerID, err := parseID("customerId", r.CustomerID)
	if err != nil {
		return err
	}
	doc.CustomerID = customerID

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	now := time.Now().UTC()
	doc.Lines = make([]sales_invoice.InvoiceLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		productID, err := parseID("lines.productId", line.ProductID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, sales_invoice.InvoiceLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    productID,
			Quantity:     line.Quantity,
			Price:        line.Price,
			Amount:       line.Price.Mul(line.Quantity.Decimal()),
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Expense ---

// ExpenseRequest creates or updates an expense document.
type ExpenseRequest struct {
	documentFields

	AccountID string               `json:"accountId" binding:"required"`
	Lines     []AccountLineRequest `json:"lines"`
}

// ToEntity builds a new Expense from the request.
func (r ExpenseRequest) ToEntity() (*expense.Expense, error) {
	doc := expense.NewExpense(r.OrganizationID, id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing Expense, replacing its
// lines wholesale.
func (r ExpenseRequest) ApplyTo(doc *expense.Expense) error {
	r.applyHeader(&doc.Document)

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	now := time.Now().UTC()
	doc.Lines = make([]expense.ExpenseLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		lineAccountID, err := parseOptionalID("lines.accountId", line.AccountID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, expense.ExpenseLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			AccountID:    lineAccountID,
			Amount:       line.Amount,
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Income ---

// IncomeRequest creates or updates an income document.
type IncomeRequest struct {
	documentFields

	AccountID string               `json:"accountId" binding:"required"`
	Lines     []AccountLineRequest `json:"lines"`
}

// ToEntity builds a new Income from the request.
func (r IncomeRequest) ToEntity() (*income.Income, error) {
	doc := income.NewIncome(r.OrganizationID, id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing Income, replacing its
// lines wholesale.
func (r IncomeRequest) ApplyTo(doc *income.Income) error {
	r.applyHeader(&doc.Document)

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	now := time.Now().UTC()
	doc.Lines = make([]income.IncomeLine, 0, len(r.Lines))
	for i, line := range r.Lines {
		lineAccountID, err := parseOptionalID("lines.accountId", line.AccountID)
		if err != nil {
			return err
		}
		refs, err := parseLineRefs(line.DepartmentID, line.ProjectID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, income.IncomeLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			AccountID:    lineAccountID,
			Amount:       line.Amount,
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         line.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return nil
}

// --- Cash transfer ---

// CashTransferRequest creates or updates a cash transfer.
type CashTransferRequest struct {
	documentFields

	FromAccountID string      `json:"fromAccountId" binding:"required"`
	ToAccountID   string      `json:"toAccountId" binding:"required"`
	Amount        types.Money `json:"amount"`
}

// ToEntity builds a new CashTransfer from the request.
func (r CashTransferRequest) ToEntity() (*cash_transfer.CashTransfer, error) {
	doc := cash_transfer.NewCashTransfer(r.OrganizationID, id.Nil(), id.Nil(), types.Zero())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing CashTransfer.
func (r CashTransferRequest) ApplyTo(doc *cash_transfer.CashTransfer) error {
	r.applyHeader(&doc.Document)
	doc.Amount = r.Amount

	fromID, err := parseID("fromAccountId", r.FromAccountID)
	if err != nil {
		return err
	}
	doc.FromAccountID = fromID

	toID, err := parseID("toAccountId", r.ToAccountID)
	if err != nil {
		return err
	}
	doc.ToAccountID = toID
	return nil
}

// --- Payable payment ---

// PayablePaymentRequest creates or updates a payable payment.
type PayablePaymentRequest struct {
	documentFields

	VendorID  string              `json:"vendorId" binding:"required"`
	AccountID string              `json:"accountId" binding:"required"`
	Details   []AllocationRequest `json:"details"`
}

// ToEntity builds a new PayablePayment from the request.
func (r PayablePaymentRequest) ToEntity() (*payable_payment.PayablePayment, error) {
	doc := payable_payment.NewPayablePayment(r.OrganizationID, id.Nil(), id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing PayablePayment,
// replacing its allocations wholesale.
func (r PayablePaymentRequest) ApplyTo(doc *payable_payment.PayablePayment) error {
	r.applyHeader(&doc.Document)

	vendorID, err := parseID("vendorId", r.VendorID)
	if err != nil {
		return err
	}
	doc.VendorID = vendorID

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	details, err := buildPayableDetails(r.Details)
	if err != nil {
		return err
	}
	doc.Details = details
	return nil
}

func buildPayableDetails(reqs []AllocationRequest) ([]payable_payment.PaymentDetail, error) {
	now := time.Now().UTC()
	details := make([]payable_payment.PaymentDetail, 0, len(reqs))
	for i, req := range reqs {
		invoiceID, err := parseID("details.invoiceId", req.InvoiceID)
		if err != nil {
			return nil, err
		}
		refs, err := parseLineRefs(req.DepartmentID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		details = append(details, payable_payment.PaymentDetail{
			LineID:       id.New(),
			LineNo:       i + 1,
			InvoiceID:    invoiceID,
			Amount:       req.Amount,
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         req.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return details, nil
}

// --- Receivable payment ---

// ReceivablePaymentRequest creates or updates a receivable payment.
type ReceivablePaymentRequest struct {
	documentFields

	CustomerID string              `json:"customerId" binding:"required"`
	AccountID  string              `json:"accountId" binding:"required"`
	Details    []AllocationRequest `json:"details"`
}

// ToEntity builds a new ReceivablePayment from the request.
func (r ReceivablePaymentRequest) ToEntity() (*receivable_payment.ReceivablePayment, error) {
	doc := receivable_payment.NewReceivablePayment(r.OrganizationID, id.Nil(), id.Nil())
	return doc, r.ApplyTo(doc)
}

// ApplyTo copies request fields onto an existing ReceivablePayment,
// replacing its allocations wholesale.
func (r ReceivablePaymentRequest) ApplyTo(doc *receivable_payment.ReceivablePayment) error {
	r.applyHeader(&doc.Document)

	customerID, err := parseID("customerId", r.CustomerID)
	if err != nil {
		return err
	}
	doc.CustomerID = customerID

	accountID, err := parseID("accountId", r.AccountID)
	if err != nil {
		return err
	}
	doc.AccountID = accountID

	details, err := buildReceivableDetails(r.Details)
	if err != nil {
		return err
	}
	doc.Details = details
	return nil
}

func buildReceivableDetails(reqs []AllocationRequest) ([]receivable_payment.PaymentDetail, error) {
	now := time.Now().UTC()
	details := make([]receivable_payment.PaymentDetail, 0, len(reqs))
	for i, req := range reqs {
		invoiceID, err := parseID("details.invoiceId", req.InvoiceID)
		if err != nil {
			return nil, err
		}
		refs, err := parseLineRefs(req.DepartmentID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		details = append(details, receivable_payment.PaymentDetail{
			LineID:       id.New(),
			LineNo:       i + 1,
			InvoiceID:    invoiceID,
			Amount:       req.Amount,
			DepartmentID: refs.departmentID,
			ProjectID:    refs.projectID,
			Note:         req.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return details, nil
}
