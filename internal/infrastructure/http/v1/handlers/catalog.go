package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/domain"
	"moneta/internal/domain/filter"
	"moneta/internal/infrastructure/http/v1/dto"
)

// CatalogRequest is the request contract of a catalog type: build a new
// entity or overlay an existing one.
type CatalogRequest[T any] interface {
	ToEntity() (T, error)
	ApplyTo(T) error
}

// CatalogHandler serves CRUD endpoints for one catalog type.
type CatalogHandler[T entity.Validatable, R CatalogRequest[T]] struct {
	BaseHandler
	svc *domain.CatalogService[T]
}

// NewCatalogHandler creates a catalog handler over its service.
func NewCatalogHandler[T entity.Validatable, R CatalogRequest[T]](svc *domain.CatalogService[T]) *CatalogHandler[T, R] {
	return &CatalogHandler[T, R]{svc: svc}
}

// Create handles POST /.
func (h *CatalogHandler[T, R]) Create(c *gin.Context) {
	var req R
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID handles GET /:id.
func (h *CatalogHandler[T, R]) GetByID(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// GetByCode handles GET /code/:code.
func (h *CatalogHandler[T, R]) GetByCode(c *gin.Context) {
	item, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Update handles PUT /:id. The entity is loaded first so optimistic
// locking works against the stored version.
func (h *CatalogHandler[T, R]) Update(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var req R
	if !h.BindJSON(c, &req) {
		return
	}
	if err := req.ApplyTo(item); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Delete handles DELETE /:id (soft delete).
func (h *CatalogHandler[T, R]) Delete(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// SetDeletionMark handles POST /:id/deletion-mark.
func (h *CatalogHandler[T, R]) SetDeletionMark(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.svc.SetDeletionMark(c.Request.Context(), itemID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true})
}

// List handles GET /.
func (h *CatalogHandler[T, R]) List(c *gin.Context) {
	f, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// GetTree handles GET /tree.
func (h *CatalogHandler[T, R]) GetTree(c *gin.Context) {
	rootID, ok := h.ParseOptionalIDQuery(c, "rootId")
	if !ok {
		return
	}

	items, err := h.svc.GetTree(c.Request.Context(), rootID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

func (h *CatalogHandler[T, R]) parseListFilter(c *gin.Context) (domain.ListFilter, bool) {
	f := domain.DefaultListFilter()

	var pagination dto.PaginationRequest
	if !h.BindQuery(c, &pagination) {
		return f, false
	}
	pagination.Normalize()
	f.Limit = pagination.Limit
	f.Offset = pagination.Offset

	f.Search = c.Query("search")
	if orderBy := c.Query("orderBy"); orderBy != "" {
		f.OrderBy = orderBy
	}
	if parentID := c.Query("parentId"); parentID != "" {
		f.ParentID = &parentID
	}

	includeDeleted, ok := h.ParseOptionalBoolQuery(c, "includeDeleted")
	if !ok {
		return f, false
	}
	f.IncludeDeleted = includeDeleted != nil && *includeDeleted

	isFolder, ok := h.ParseOptionalBoolQuery(c, "isFolder")
	if !ok {
		return f, false
	}
	f.IsFolder = isFolder

	// Free-form filter rows come as a JSON array in the filter param.
	if raw := c.Query("filter"); raw != "" {
		var items []filter.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter parameter").
				WithDetail("error", err.Error()))
			return f, false
		}
		f.AdvancedFilters = items
	}

	return f, true
}
