package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/purchase_receipt"
	"moneta/internal/infrastructure/http/v1/dto"
)

// PurchaseReceiptHandler serves purchase receipt endpoints.
type PurchaseReceiptHandler struct {
	*DocumentHandler[*purchase_receipt.PurchaseReceipt, dto.PurchaseReceiptRequest]
	svc *purchase_receipt.Service
}

// NewPurchaseReceiptHandler creates the handler.
func NewPurchaseReceiptHandler(svc *purchase_receipt.Service) *PurchaseReceiptHandler {
	return &PurchaseReceiptHandler{
		DocumentHandler: NewDocumentHandler[*purchase_receipt.PurchaseReceipt, dto.PurchaseReceiptRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with receipt-specific filters.
func (h *PurchaseReceiptHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	vendorID, ok := h.ParseOptionalIDQuery(c, "vendorId")
	if !ok {
		return
	}
	isBeginning, ok := h.ParseOptionalBoolQuery(c, "isBeginning")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), purchase_receipt.ListFilter{
		ListFilter:  base,
		VendorID:    vendorID,
		IsBeginning: isBeginning,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
