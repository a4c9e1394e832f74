package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/validator"
	"prepvio_backend/pkg/apperrors"
)

// BaseHandler carries the request plumbing shared by every handler:
// binding, validation, error mapping and identity extraction.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{validator: validator.New()}
}

// BindAndValidateJSON binds the body and runs struct validation.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body").WithError(err))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		if verr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(verr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetUserID returns the authenticated user, writing 401 when absent.
func (h *BaseHandler) GetUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("authentication required"))
		return "", false
	}
	return userID, true
}

// IsAdmin reports whether the request carries the admin role.
func (h *BaseHandler) IsAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	switch v := role.(type) {
	case models.UserRole:
		return v == models.UserRoleAdmin
	case string:
		return v == string(models.UserRoleAdmin)
	}
	return false
}

// ParsePagination reads page/pageSize query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// ParseQueryDateRange reads from/to query params as YYYY-MM-DD. Missing
// bounds default to a one month window ending tomorrow.
func (h *BaseHandler) ParseQueryDateRange(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(layout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(layout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

// OK writes the success envelope with an embedded payload key.
func (h *BaseHandler) OK(c *gin.Context, key string, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, key: payload})
}

// Created writes the success envelope with status 201.
func (h *BaseHandler) Created(c *gin.Context, key string, payload interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, key: payload})
}

// NoContentOK acknowledges an action with no payload.
func (h *BaseHandler) NoContentOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
