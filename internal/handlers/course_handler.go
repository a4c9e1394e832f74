package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type CourseHandler struct {
	*BaseHandler
	service services.CourseService
}

func NewCourseHandler(base *BaseHandler, service services.CourseService) *CourseHandler {
	return &CourseHandler{BaseHandler: base, service: service}
}

func (h *CourseHandler) RegisterRoutes(r *gin.RouterGroup) {
	courses := r.Group("/courses")
	courses.Use(middleware.AuthMiddleware())
	{
		courses.GET("", h.ListCourses)
		courses.GET("/:id", h.GetCourse)

		admin := courses.Group("")
		admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
		{
			admin.POST("", h.CreateCourse)
			admin.PUT("/:id", h.UpdateCourse)
			admin.DELETE("/:id", h.DeleteCourse)
		}
	}

	categories := r.Group("/categories")
	categories.Use(middleware.AuthMiddleware())
	{
		categories.GET("", h.ListCategories)

		admin := categories.Group("")
		admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
		{
			admin.POST("", h.CreateCategory)
			admin.PUT("/:id", h.UpdateCategory)
			admin.DELETE("/:id", h.DeleteCategory)
		}
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateCourse(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "course", resp)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	resp, err := h.service.GetCourse(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "course", resp)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)
	criteria := repositories.CourseFilter{
		CategoryID:    c.Query("categoryId"),
		PublishedOnly: c.Query("published") == "true",
		Search:        c.Query("search"),
		Page:          page,
		PageSize:      pageSize,
	}

	resp, err := h.service.ListCourses(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "data", resp)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateCourse(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "course", resp)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *CourseHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateCategory(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "category", resp)
}

func (h *CourseHandler) ListCategories(c *gin.Context) {
	resp, err := h.service.ListCategories()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "categories", resp)
}

func (h *CourseHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateCategory(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "category", resp)
}

func (h *CourseHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
