package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
)

// UserHandler is the admin user-management surface.
type UserHandler struct {
	*BaseHandler
	service services.UserService
}

func NewUserHandler(base *BaseHandler, service services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/users")
	group.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id/suspend", h.Suspend)
		group.PUT("/:id/activate", h.Activate)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	criteria := repositories.UserFilter{
		Role:     models.UserRole(c.Query("role")),
		Status:   models.UserStatus(c.Query("status")),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := h.service.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "data", gin.H{
		"users":    users,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "user", resp)
}

func (h *UserHandler) Suspend(c *gin.Context) {
	if err := h.service.Suspend(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *UserHandler) Activate(c *gin.Context) {
	if err := h.service.Activate(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
