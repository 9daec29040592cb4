// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
)

// BaseHandler provides common helpers for all handlers.
type BaseHandler struct{}

// BindJSON binds the request body, converting bind failures into
// validation errors.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").
			WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").
			WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseIDParam parses a path parameter as an entity ID.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").
			WithDetail("param", name).
			WithDetail("value", c.Param(name)))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseOptionalIDQuery parses an optional query parameter as an ID.
func (h *BaseHandler) ParseOptionalIDQuery(c *gin.Context, name string) (*id.ID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").
			WithDetail("param", name).
			WithDetail("value", raw))
		return nil, false
	}
	return &parsed, true
}

// ParseOptionalBoolQuery parses an optional boolean query parameter.
func (h *BaseHandler) ParseOptionalBoolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid boolean").
			WithDetail("param", name).
			WithDetail("value", raw))
		return nil, false
	}
	return &parsed, true
}

// ParseOptionalDateQuery parses an optional RFC 3339 or date-only query
// parameter.
func (h *BaseHandler) ParseOptionalDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date").
			WithDetail("param", name).
			WithDetail("value", raw))
		return nil, false
	}
	t = t.UTC()
	return &t, true
}

// ParseDateQuery parses a required date query parameter.
func (h *BaseHandler) ParseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.Error(c, apperror.NewValidation("missing query parameter").
			WithDetail("param", name))
		return time.Time{}, false
	}
	t, ok := h.ParseOptionalDateQuery(c, name)
	if !ok {
		return time.Time{}, false
	}
	return *t, true
}

// Error records the error for the error middleware to render.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// OK responds with 200 and the payload.
func (h *BaseHandler) OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created responds with 201 and the payload.
func (h *BaseHandler) Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent responds with 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
