package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/core/types"
	"moneta/internal/domain/settlement"
)

// SettlementHandler serves invoice settlement and aging endpoints.
// The invoiceType path segment selects the side: purchase_invoice for
// payables, sales_invoice for receivables.
type SettlementHandler struct {
	BaseHandler
	svc *settlement.Service
}

// NewSettlementHandler creates the handler.
func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Outstanding handles GET /:invoiceType/:invoiceId/outstanding.
func (h *SettlementHandler) Outstanding(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "invoiceId")
	if !ok {
		return
	}

	outstanding, err := h.svc.Outstanding(c.Request.Context(), c.Param("invoiceType"), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	paid, err := h.svc.PaidAmount(c.Request.Context(), c.Param("invoiceType"), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"invoiceId":   invoiceID,
		"paidAmount":  types.FormatMoney(paid),
		"outstanding": types.FormatMoney(outstanding),
	})
}

// AgedInvoices handles GET /:invoiceType/aged: open invoices with their
// outstanding amounts placed in aging buckets as of today.
func (h *SettlementHandler) AgedInvoices(c *gin.Context) {
	q, ok := h.parseInvoiceQuery(c)
	if !ok {
		return
	}

	aged, err := h.svc.AgeInvoices(c.Request.Context(), q)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, aged)
}

// AgedAllocations handles GET /:invoiceType/:invoiceId/allocations:
// the invoice's payment allocations, negated and aged from the invoice
// date to each payment date.
func (h *SettlementHandler) AgedAllocations(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "invoiceId")
	if !ok {
		return
	}

	aged, err := h.svc.AgeAllocations(c.Request.Context(), c.Param("invoiceType"), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, aged)
}

// OutstandingByContact handles GET /:invoiceType/by-contact: the
// invoice side grouped by vendor or customer.
func (h *SettlementHandler) OutstandingByContact(c *gin.Context) {
	q, ok := h.parseInvoiceQuery(c)
	if !ok {
		return
	}

	groups, err := h.svc.OutstandingByContact(c.Request.Context(), q)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, groups)
}

func (h *SettlementHandler) parseInvoiceQuery(c *gin.Context) (settlement.InvoiceQuery, bool) {
	q := settlement.InvoiceQuery{InvoiceType: c.Param("invoiceType")}

	var ok bool
	if q.ContactID, ok = h.ParseOptionalIDQuery(c, "contactId"); !ok {
		return q, false
	}
	if q.DateFrom, ok = h.ParseOptionalDateQuery(c, "dateFrom"); !ok {
		return q, false
	}
	if q.DateTo, ok = h.ParseOptionalDateQuery(c, "dateTo"); !ok {
		return q, false
	}
	if q.HasTax, ok = h.ParseOptionalBoolQuery(c, "hasTax"); !ok {
		return q, false
	}
	return q, true
}
