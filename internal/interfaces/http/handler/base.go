// Package handler holds the gin handlers of the field stock API.
package handler

import (
	"net/http"

	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 response for a failed bind
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts service errors to HTTP responses. Errors that end
// up as 500 are attached to the gin context so the request logger sees them.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	result := dto.TranslateError(err)
	if result.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	h.Error(c, result.Status, result.Code, result.Message)
}

// tenantID returns the tenant resolved by the tenant middleware
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidTenant, "Tenant ID is required")
		return uuid.Nil, false
	}
	return tenantID, true
}

// pathID parses a UUID path parameter
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter. An absent parameter
// yields a nil pointer.
func (h *BaseHandler) queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// requiredQueryID parses a mandatory UUID query parameter
func (h *BaseHandler) requiredQueryID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := h.queryID(c, name)
	if !ok {
		return uuid.Nil, false
	}
	if id == nil || *id == uuid.Nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, name+" is required")
		return uuid.Nil, false
	}
	return *id, true
}

// actingUser prefers the user named in the request body and falls back to
// the authenticated caller
func actingUser(c *gin.Context, fromBody uuid.UUID) uuid.UUID {
	if fromBody != uuid.Nil {
		return fromBody
	}
	return middleware.GetUserID(c)
}
