package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/catalogs/account"
	"moneta/internal/domain/catalogs/category"
	"moneta/internal/domain/catalogs/contact"
	"moneta/internal/domain/catalogs/department"
	"moneta/internal/domain/catalogs/product"
	"moneta/internal/domain/catalogs/project"
	"moneta/internal/infrastructure/http/v1/dto"
)

// AccountHandler serves chart-of-accounts endpoints.
type AccountHandler struct {
	*CatalogHandler[*account.Account, dto.AccountRequest]
	svc *account.Service
}

// NewAccountHandler creates the handler.
func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{
		CatalogHandler: NewCatalogHandler[*account.Account, dto.AccountRequest](svc.CatalogService),
		svc:            svc,
	}
}

// ListByClass handles GET /class/:class.
func (h *AccountHandler) ListByClass(c *gin.Context) {
	accounts, err := h.svc.ListByClass(c.Request.Context(), account.Class(c.Param("class")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, accounts)
}

// ListCashBank handles GET /cash-bank: accounts usable by payment and
// transfer documents.
func (h *AccountHandler) ListCashBank(c *gin.Context) {
	accounts, err := h.svc.ListCashBank(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, accounts)
}

// CategoryHandler serves product category endpoints.
type CategoryHandler struct {
	*CatalogHandler[*category.Category, dto.CategoryRequest]
}

// NewCategoryHandler creates the handler.
func NewCategoryHandler(svc *category.Service) *CategoryHandler {
	return &CategoryHandler{
		CatalogHandler: NewCatalogHandler[*category.Category, dto.CategoryRequest](svc.CatalogService),
	}
}

// ProductHandler serves product endpoints.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.ProductRequest]
	svc *product.Service
}

// NewProductHandler creates the handler.
func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{
		CatalogHandler: NewCatalogHandler[*product.Product, dto.ProductRequest](svc.CatalogService),
		svc:            svc,
	}
}

// FindBySKU handles GET /sku/:sku.
func (h *ProductHandler) FindBySKU(c *gin.Context) {
	item, err := h.svc.FindBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// ListByCategory handles GET /category/:categoryId.
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "categoryId")
	if !ok {
		return
	}
	f, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.svc.ListByCategory(c.Request.Context(), categoryID, f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// ContactHandler serves vendor and customer endpoints.
type ContactHandler struct {
	*CatalogHandler[*contact.Contact, dto.ContactRequest]
	svc *contact.Service
}

// NewContactHandler creates the handler.
func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{
		CatalogHandler: NewCatalogHandler[*contact.Contact, dto.ContactRequest](svc.CatalogService),
		svc:            svc,
	}
}

// ListVendors handles GET /vendors.
func (h *ContactHandler) ListVendors(c *gin.Context) {
	f, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.svc.ListVendors(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// ListCustomers handles GET /customers.
func (h *ContactHandler) ListCustomers(c *gin.Context) {
	f, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.svc.ListCustomers(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// DepartmentHandler serves department endpoints.
type DepartmentHandler struct {
	*CatalogHandler[*department.Department, dto.DepartmentRequest]
}

// NewDepartmentHandler creates the handler.
func NewDepartmentHandler(svc *department.Service) *DepartmentHandler {
	return &DepartmentHandler{
		CatalogHandler: NewCatalogHandler[*department.Department, dto.DepartmentRequest](svc.CatalogService),
	}
}

// ProjectHandler serves project endpoints.
type ProjectHandler struct {
	*CatalogHandler[*project.Project, dto.ProjectRequest]
}

// NewProjectHandler creates the handler.
func NewProjectHandler(svc *project.Service) *ProjectHandler {
	return &ProjectHandler{
		CatalogHandler: NewCatalogHandler[*project.Project, dto.ProjectRequest](svc.CatalogService),
	}
}
