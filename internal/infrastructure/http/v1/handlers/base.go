// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	appctx "github.com/PnBafon/viten-backend/internal/core/context"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseIDParam parses a numeric path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", name))
		return 0, false
	}
	return id, true
}

// Error processes error and sends appropriate response.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	h.HandleError(c, err)
}

// HandleError registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// GetUserID extracts user ID from request context.
func (h *BaseHandler) GetUserID(c *gin.Context) int64 {
	userCtx := appctx.GetUser(c.Request.Context())
	if userCtx == nil {
		return 0
	}
	return userCtx.UserID
}

// CompleteIdempotency marks idempotency key as completed with the same HTTP semantics
// (status code + content type + body) for correct replay.
func (h *BaseHandler) CompleteIdempotency(c *gin.Context, statusCode int, contentType string, response any) {
	if key, exists := c.Get("idempotency_key"); exists {
		if store, ok := c.Get("idempotency_store"); ok {
			_ = store.(*postgres.IdempotencyStore).CompleteKey(c.Request.Context(), key.(string), statusCode, contentType, response)
		}
	}
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, id int64) {
	response := dto.IDResponse{ID: id}
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	h.CompleteIdempotency(c, http.StatusOK, "application/json", data)
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	// 204 must replay as 204 with empty body.
	h.CompleteIdempotency(c, http.StatusNoContent, "", nil)
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	response := dto.SuccessResponse{Success: true, Message: message}
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}
