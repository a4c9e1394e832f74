package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type DepartmentHandler struct {
	*BaseHandler
	service services.DepartmentService
}

func NewDepartmentHandler(base *BaseHandler, service services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{BaseHandler: base, service: service}
}

func (h *DepartmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/departments")
	group.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "department", resp)
}

func (h *DepartmentHandler) List(c *gin.Context) {
	resp, err := h.service.List()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "departments", resp)
}

func (h *DepartmentHandler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "department", resp)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "department", resp)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
