package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/infrastructure/http/v1/dto"
)

// DocumentService is the lifecycle surface a document handler needs.
// Posting is implicit: create posts, update reposts, delete unposts.
type DocumentService[T documents.Document] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
}

// DocumentRequest is the request contract of a document type.
type DocumentRequest[T any] interface {
	ToEntity() (T, error)
	ApplyTo(T) error
}

// DocumentHandler serves the shared lifecycle endpoints for one
// document type. List stays on the concrete handler: filters differ
// per type.
type DocumentHandler[T documents.Document, R DocumentRequest[T]] struct {
	BaseHandler
	svc DocumentService[T]
}

// NewDocumentHandler creates a document handler over its service.
func NewDocumentHandler[T documents.Document, R DocumentRequest[T]](svc DocumentService[T]) *DocumentHandler[T, R] {
	return &DocumentHandler[T, R]{svc: svc}
}

// Create handles POST /.
func (h *DocumentHandler[T, R]) Create(c *gin.Context) {
	var req R
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// GetByID handles GET /:id.
func (h *DocumentHandler[T, R]) GetByID(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// GetByNumber handles GET /number/:number.
func (h *DocumentHandler[T, R]) GetByNumber(c *gin.Context) {
	doc, err := h.svc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Update handles PUT /:id. The document is loaded first so the stored
// version and reference number survive the overlay.
func (h *DocumentHandler[T, R]) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var req R
	if !h.BindJSON(c, &req) {
		return
	}
	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Delete handles DELETE /:id. The journal and stock movements go with
// the document in one transaction.
func (h *DocumentHandler[T, R]) Delete(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// parseDocumentListFilter parses the list parameters shared by all
// document types plus the date range.
func (h *BaseHandler) parseDocumentListFilter(c *gin.Context) (domain.ListFilter, *time.Time, *time.Time, bool) {
	f := domain.DefaultListFilter()
	f.OrderBy = "-date"

	var pagination dto.PaginationRequest
	if !h.BindQuery(c, &pagination) {
		return f, nil, nil, false
	}
	pagination.Normalize()
	f.Limit = pagination.Limit
	f.Offset = pagination.Offset

	f.Search = c.Query("search")
	if orderBy := c.Query("orderBy"); orderBy != "" {
		f.OrderBy = orderBy
	}

	includeDeleted, ok := h.ParseOptionalBoolQuery(c, "includeDeleted")
	if !ok {
		return f, nil, nil, false
	}
	f.IncludeDeleted = includeDeleted != nil && *includeDeleted

	dateFrom, ok := h.ParseOptionalDateQuery(c, "dateFrom")
	if !ok {
		return f, nil, nil, false
	}
	dateTo, ok := h.ParseOptionalDateQuery(c, "dateTo")
	if !ok {
		return f, nil, nil, false
	}

	return f, dateFrom, dateTo, true
}
