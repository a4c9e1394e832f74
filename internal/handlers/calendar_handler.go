package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type CalendarHandler struct {
	*BaseHandler
	service services.CalendarService
}

func NewCalendarHandler(base *BaseHandler, service services.CalendarService) *CalendarHandler {
	return &CalendarHandler{BaseHandler: base, service: service}
}

func (h *CalendarHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/calendar")
	group.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		group.POST("/events", h.Create)
		group.GET("/events", h.ListRange)
		group.GET("/events/:id", h.GetByID)
		group.PUT("/events/:id", h.Update)
		group.DELETE("/events/:id", h.Delete)
	}
}

func (h *CalendarHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "event", resp)
}

func (h *CalendarHandler) ListRange(c *gin.Context) {
	from, to, err := h.ParseQueryDateRange(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("from/to must be YYYY-MM-DD"))
		return
	}

	resp, err := h.service.ListRange(from, to)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "events", resp)
}

func (h *CalendarHandler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "event", resp)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "event", resp)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}
