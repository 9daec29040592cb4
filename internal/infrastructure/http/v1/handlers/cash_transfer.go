package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/cash_transfer"
	"moneta/internal/infrastructure/http/v1/dto"
)

// CashTransferHandler serves cash transfer endpoints.
type CashTransferHandler struct {
	*DocumentHandler[*cash_transfer.CashTransfer, dto.CashTransferRequest]
	svc *cash_transfer.Service
}

// NewCashTransferHandler creates the handler.
func NewCashTransferHandler(svc *cash_transfer.Service) *CashTransferHandler {
	return &CashTransferHandler{
		DocumentHandler: NewDocumentHandler[*cash_transfer.CashTransfer, dto.CashTransferRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with transfer-specific filters.
func (h *CashTransferHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	fromAccountID, ok := h.ParseOptionalIDQuery(c, "fromAccountId")
	if !ok {
		return
	}
	toAccountID, ok := h.ParseOptionalIDQuery(c, "toAccountId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), cash_transfer.ListFilter{
		ListFilter:    base,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
