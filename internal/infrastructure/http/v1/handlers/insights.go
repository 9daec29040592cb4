package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/insights"
)

// InsightsHandler serves dashboard figure endpoints.
type InsightsHandler struct {
	BaseHandler
	svc *insights.Service
}

// NewInsightsHandler creates the handler.
func NewInsightsHandler(svc *insights.Service) *InsightsHandler {
	return &InsightsHandler{svc: svc}
}

// Summary handles GET /summary?from=&to=: revenue, expense, profit and
// margin for the period.
func (h *InsightsHandler) Summary(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	summary, err := h.svc.Summarize(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// Compare handles GET /compare?from=&to=: the period against the
// preceding period of equal length, with growth rates.
func (h *InsightsHandler) Compare(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	comparison, err := h.svc.Compare(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, comparison)
}
