package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type TicketHandler struct {
	*BaseHandler
	service services.TicketService
}

func NewTicketHandler(base *BaseHandler, service services.TicketService) *TicketHandler {
	return &TicketHandler{BaseHandler: base, service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/tickets")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
		group.POST("/:id/reply", h.Reply)

		admin := group.Group("")
		admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
		{
			admin.PUT("/:id/status", h.UpdateStatus)
			admin.DELETE("/:id", h.Delete)
			admin.GET("/stats", h.Stats)
		}
	}
}

func (h *TicketHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "ticket", resp)
}

// List shows all tickets to admins and only the caller's own to users.
func (h *TicketHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	criteria := repositories.TicketFilter{
		Status:   models.TicketStatus(c.Query("status")),
		Priority: models.TicketPriority(c.Query("priority")),
		Page:     page,
		PageSize: pageSize,
	}
	if !h.IsAdmin(c) {
		criteria.UserID = userID
	} else if owner := c.Query("userId"); owner != "" {
		criteria.UserID = owner
	}

	resp, err := h.service.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "data", resp)
}

func (h *TicketHandler) GetByID(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(userID, h.IsAdmin(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "ticket", resp)
}

func (h *TicketHandler) Reply(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ReplyTicketRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Reply(userID, h.IsAdmin(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "ticket", resp)
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTicketStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "ticket", resp)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *TicketHandler) Stats(c *gin.Context) {
	resp, err := h.service.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "stats", resp)
}
