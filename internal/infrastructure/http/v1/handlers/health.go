package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneta/internal/core/tenant"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	metaPool *pgxpool.Pool
	manager  *tenant.Manager
	version  string
}

// NewHealthHandler creates the handler.
func NewHealthHandler(metaPool *pgxpool.Pool, manager *tenant.Manager, version string) *HealthHandler {
	return &HealthHandler{metaPool: metaPool, manager: manager, version: version}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. Readiness requires the tenant meta
// database to answer.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.metaPool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "meta database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info handles GET /health/info.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     h.version,
		"tenantPools": h.manager.PoolCount(),
	})
}
