package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/infrastructure/http/v1/dto"
)

// PurchaseInvoiceHandler serves purchase invoice endpoints.
type PurchaseInvoiceHandler struct {
	*DocumentHandler[*purchase_invoice.PurchaseInvoice, dto.PurchaseInvoiceRequest]
	svc *purchase_invoice.Service
}

// NewPurchaseInvoiceHandler creates the handler.
func NewPurchaseInvoiceHandler(svc *purchase_invoice.Service) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{
		DocumentHandler: NewDocumentHandler[*purchase_invoice.PurchaseInvoice, dto.PurchaseInvoiceRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with invoice-specific filters.
func (h *PurchaseInvoiceHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	vendorID, ok := h.ParseOptionalIDQuery(c, "vendorId")
	if !ok {
		return
	}
	isReceipt, ok := h.ParseOptionalBoolQuery(c, "isReceipt")
	if !ok {
		return
	}
	hasTax, ok := h.ParseOptionalBoolQuery(c, "hasTax")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), purchase_invoice.ListFilter{
		ListFilter: base,
		VendorID:   vendorID,
		IsReceipt:  isReceipt,
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
