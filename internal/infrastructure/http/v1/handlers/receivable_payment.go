package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/receivable_payment"
	"moneta/internal/infrastructure/http/v1/dto"
)

// ReceivablePaymentHandler serves receivable payment endpoints.
type ReceivablePaymentHandler struct {
	*DocumentHandler[*receivable_payment.ReceivablePayment, dto.ReceivablePaymentRequest]
	svc *receivable_payment.Service
}

// NewReceivablePaymentHandler creates the handler.
func NewReceivablePaymentHandler(svc *receivable_payment.Service) *ReceivablePaymentHandler {
	return &ReceivablePaymentHandler{
		DocumentHandler: NewDocumentHandler[*receivable_payment.ReceivablePayment, dto.ReceivablePaymentRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with payment-specific filters.
func (h *ReceivablePaymentHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	customerID, ok := h.ParseOptionalIDQuery(c, "customerId")
	if !ok {
		return
	}
	accountID, ok := h.ParseOptionalIDQuery(c, "accountId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), receivable_payment.ListFilter{
		ListFilter: base,
		CustomerID: customerID,
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

// ListByInvoice handles GET /by-invoice/:invoiceId.
func (h *ReceivablePaymentHandler) ListByInvoice(c *gin.Context) {
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
