package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/expense"
	"moneta/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves expense document endpoints.
type ExpenseHandler struct {
	*DocumentHandler[*expense.Expense, dto.ExpenseRequest]
	svc *expense.Service
}

// NewExpenseHandler creates the handler.
func NewExpenseHandler(svc *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{
		DocumentHandler: NewDocumentHandler[*expense.Expense, dto.ExpenseRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with expense-specific filters.
func (h *ExpenseHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	accountID, ok := h.ParseOptionalIDQuery(c, "accountId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), expense.ListFilter{
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
