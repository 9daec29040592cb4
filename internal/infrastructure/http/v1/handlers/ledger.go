package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/domain/ledger"
	"moneta/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves journal read endpoints. Journals are never
// written through the API: the posting engine owns them.
type LedgerHandler struct {
	BaseHandler
	svc *ledger.Service
}

// NewLedgerHandler creates the handler.
func NewLedgerHandler(svc *ledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// GetByID handles GET /:id.
func (h *LedgerHandler) GetByID(c *gin.Context) {
	journalID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	journal, err := h.svc.GetByID(c.Request.Context(), journalID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, journal)
}

// GetBySource handles GET /source/:sourceType/:sourceId: the journal
// posted for a document.
func (h *LedgerHandler) GetBySource(c *gin.Context) {
	sourceID, ok := h.ParseIDParam(c, "sourceId")
	if !ok {
		return
	}

	journal, err := h.svc.GetBySource(c.Request.Context(), c.Param("sourceType"), sourceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, journal)
}

// GetByReferenceNo handles GET /number/:number.
func (h *LedgerHandler) GetByReferenceNo(c *gin.Context) {
	journal, err := h.svc.GetByReferenceNo(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, journal)
}

// List handles GET /.
func (h *LedgerHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	f := ledger.Filter{
		ListFilter: base,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}
	if raw := c.Query("category"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category").
				WithDetail("value", raw))
			return
		}
		category := entity.JournalCategory(n)
		f.Category = &category
	}
	if sourceType := c.Query("sourceType"); sourceType != "" {
		f.SourceType = &sourceType
	}

	result, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// Lines handles GET /lines: journal lines across journals, filtered by
// account, dimension, or period.
func (h *LedgerHandler) Lines(c *gin.Context) {
	var pagination dto.PaginationRequest
	if !h.BindQuery(c, &pagination) {
		return
	}
	pagination.Normalize()

	f := ledger.LineFilter{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}

	var ok bool
	if f.JournalID, ok = h.ParseOptionalIDQuery(c, "journalId"); !ok {
		return
	}
	if f.AccountID, ok = h.ParseOptionalIDQuery(c, "accountId"); !ok {
		return
	}
	if f.DepartmentID, ok = h.ParseOptionalIDQuery(c, "departmentId"); !ok {
		return
	}
	if f.ProjectID, ok = h.ParseOptionalIDQuery(c, "projectId"); !ok {
		return
	}
	if f.DateFrom, ok = h.ParseOptionalDateQuery(c, "dateFrom"); !ok {
		return
	}
	if f.DateTo, ok = h.ParseOptionalDateQuery(c, "dateTo"); !ok {
		return
	}

	lines, err := h.svc.Lines(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lines)
}

// Totals handles GET /:id/totals.
func (h *LedgerHandler) Totals(c *gin.Context) {
	journalID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	totals, err := h.svc.Totals(c.Request.Context(), journalID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, totals)
}

// ScanUnbalanced handles GET /scan-unbalanced?from=&to=: journals in
// the period whose debit and credit sides disagree.
func (h *LedgerHandler) ScanUnbalanced(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	findings, err := h.svc.ScanUnbalanced(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, findings)
}
