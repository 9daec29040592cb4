package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/infrastructure/http/v1/dto"
)

// SalesInvoiceHandler serves sales invoice endpoints.
type SalesInvoiceHandler struct {
	*DocumentHandler[*sales_invoice.SalesInvoice, dto.SalesInvoiceRequest]
	svc *sales_invoice.Service
}

// NewSalesInvoiceHandler creates the handler.
func NewSalesInvoiceHandler(svc *sales_invoice.Service) *SalesInvoiceHandler {
	return &SalesInvoiceHandler{
		DocumentHandler: NewDocumentHandler[*sales_invoice.SalesInvoice, dto.SalesInvoiceRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with invoice-specific filters.
func (h *SalesInvoiceHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	customerID, ok := h.ParseOptionalIDQuery(c, "customerId")
	if !ok {
		return
	}
	hasTax, ok := h.ParseOptionalBoolQuery(c, "hasTax")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), sales_invoice.ListFilter{
		ListFilter: base,
		CustomerID: customerID,
		HasTax:     hasTax,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
