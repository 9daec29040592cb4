package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRoutes is the endpoint set every catalog handler provides.
type CatalogRoutes interface {
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	GetByCode(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	List(c *gin.Context)
	GetTree(c *gin.Context)
}

// DocumentRoutes is the endpoint set every document handler provides.
type DocumentRoutes interface {
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	GetByNumber(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

// RegisterCatalogRoutes mounts the standard catalog endpoints.
func RegisterCatalogRoutes(rg *gin.RouterGroup, h CatalogRoutes) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/tree", h.GetTree)
	rg.GET("/code/:code", h.GetByCode)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/deletion-mark", h.SetDeletionMark)
}

// RegisterDocumentRoutes mounts the standard document endpoints.
// Posting has no endpoints of its own: create posts, update reposts,
// delete unposts.
func RegisterDocumentRoutes(rg *gin.RouterGroup, h DocumentRoutes) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/number/:number", h.GetByNumber)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
