package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/payable_payment"
	"moneta/internal/infrastructure/http/v1/dto"
)

// PayablePaymentHandler serves payable payment endpoints.
type PayablePaymentHandler struct {
	*DocumentHandler[*payable_payment.PayablePayment, dto.PayablePaymentRequest]
	svc *payable_payment.Service
}

// NewPayablePaymentHandler creates the handler.
func NewPayablePaymentHandler(svc *payable_payment.Service) *PayablePaymentHandler {
	return &PayablePaymentHandler{
		DocumentHandler: NewDocumentHandler[*payable_payment.PayablePayment, dto.PayablePaymentRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with payment-specific filters.
func (h *PayablePaymentHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	vendorID, ok := h.ParseOptionalIDQuery(c, "vendorId")
	if !ok {
		return
	}
	accountID, ok := h.ParseOptionalIDQuery(c, "accountId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), payable_payment.ListFilter{
		ListFilter: base,
		VendorID:   vendorID,
		AccountID:  accountID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// ListByInvoice handles GET /by-invoice/:invoiceId: payments holding an
// allocation against the invoice, in date order.
func (h *PayablePaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "invoiceId")
	if !ok {
		return
	}

	payments, err := h.svc.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, payments)
}
