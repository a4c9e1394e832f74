package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type EmployeeHandler struct {
	*BaseHandler
	service services.EmployeeService
}

func NewEmployeeHandler(base *BaseHandler, service services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{BaseHandler: base, service: service}
}

func (h *EmployeeHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/employees")
	group.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		group.POST("/add", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "employee", resp)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	criteria := repositories.EmployeeFilter{
		DepartmentID: c.Query("departmentId"),
		Status:       models.EmployeeStatus(c.Query("status")),
		Search:       c.Query("search"),
		Page:         page,
		PageSize:     pageSize,
	}

	resp, err := h.service.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "data", resp)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "employee", resp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "employee", resp)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
