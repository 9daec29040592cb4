package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/income"
	"moneta/internal/infrastructure/http/v1/dto"
)

// IncomeHandler serves income document endpoints.
type IncomeHandler struct {
	*DocumentHandler[*income.Income, dto.IncomeRequest]
	svc *income.Service
}

// NewIncomeHandler creates the handler.
func NewIncomeHandler(svc *income.Service) *IncomeHandler {
	return &IncomeHandler{
		DocumentHandler: NewDocumentHandler[*income.Income, dto.IncomeRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with income-specific filters.
func (h *IncomeHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	accountID, ok := h.ParseOptionalIDQuery(c, "accountId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), income.ListFilter{
		ListFilter: base,
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
