package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	"moneta/internal/infrastructure/storage/postgres"
)

// AuditHandler serves the posting audit trail.
type AuditHandler struct {
	BaseHandler
	store *postgres.AuditStore
}

// NewAuditHandler creates the handler.
func NewAuditHandler(store *postgres.AuditStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// History handles GET /?sourceType=&sourceId=: posting events recorded
// for one document, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	sourceType := c.Query("sourceType")
	if sourceType == "" {
		h.Error(c, apperror.NewValidation("missing query parameter").
			WithDetail("param", "sourceType"))
		return
	}
	sourceID, ok := h.ParseOptionalIDQuery(c, "sourceId")
	if !ok {
		return
	}
	if sourceID == nil {
		h.Error(c, apperror.NewValidation("missing query parameter").
			WithDetail("param", "sourceId"))
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.Error(c, apperror.NewValidation("invalid limit").
				WithDetail("value", raw))
			return
		}
		limit = n
	}

	records, err := h.store.History(c.Request.Context(), sourceType, *sourceID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, records)
}
