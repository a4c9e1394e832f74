package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type NotificationHandler struct {
	*BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, service: service}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/notifications")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", h.List)
		group.GET("/unread-count", h.UnreadCount)
		group.PUT("/:id/read", h.MarkAsRead)
		group.PUT("/read-all", h.MarkAllAsRead)
		group.DELETE("/:id", h.Delete)

		admin := group.Group("")
		admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
		{
			admin.POST("", h.Create)
		}
	}
}

// Create lets an admin push a manual notification to a user.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "notification", resp)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	criteria := repositories.NotificationCriteria{
		UnreadOnly: c.Query("unread") == "true",
		Type:       c.Query("type"),
		Page:       page,
		PageSize:   pageSize,
	}

	resp, err := h.service.List(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "data", resp)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "count", count)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
