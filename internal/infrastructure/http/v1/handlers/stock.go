package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	"moneta/internal/domain/registers/stock"
)

// StockHandler serves stock register read endpoints. Movements are
// written only by the documents that record them.
type StockHandler struct {
	BaseHandler
	svc *stock.Service
}

// NewStockHandler creates the handler.
func NewStockHandler(svc *stock.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) asOf(c *gin.Context) (time.Time, bool) {
	asOf, ok := h.ParseOptionalDateQuery(c, "asOf")
	if !ok {
		return time.Time{}, false
	}
	if asOf == nil {
		return time.Now().UTC(), true
	}
	return *asOf, true
}

// Balance handles GET /:productId/balance?asOf=.
func (h *StockHandler) Balance(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "productId")
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}

	balance, err := h.svc.Balance(c.Request.Context(), productID, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{
		"productId": productID,
		"asOf":      asOf,
		"balance":   balance,
	})
}

// Balances handles GET /balances?asOf=: on-hand quantity per product.
func (h *StockHandler) Balances(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}

	balances, err := h.svc.Balances(c.Request.Context(), asOf)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, balances)
}

// Movements handles GET /movements?recorderType=&recorderId=: the raw
// movements one document recorded.
func (h *StockHandler) Movements(c *gin.Context) {
	recorderType := c.Query("recorderType")
	if recorderType == "" {
		h.Error(c, apperror.NewValidation("missing query parameter").
			WithDetail("param", "recorderType"))
		return
	}
	recorderID, ok := h.ParseOptionalIDQuery(c, "recorderId")
	if !ok {
		return
	}
	if recorderID == nil {
		h.Error(c, apperror.NewValidation("missing query parameter").
			WithDetail("param", "recorderId"))
		return
	}

	movements, err := h.svc.ListByRecorder(c.Request.Context(), recorderType, *recorderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, movements)
}

// Turnover handles GET /:productId/turnover?from=&to=.
func (h *StockHandler) Turnover(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "productId")
	if !ok {
		return
	}
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	in, out, err := h.svc.Turnover(c.Request.Context(), productID, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{
		"productId": productID,
		"from":      from,
		"to":        to,
		"totalIn":   in,
		"totalOut":  out,
	})
}
