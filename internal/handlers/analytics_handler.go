package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/services"
)

type AnalyticsHandler struct {
	*BaseHandler
	service services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	group.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		group.GET("/revenue/overview", h.Overview)
		group.GET("/revenue/growth", h.Growth)
		group.GET("/revenue/plans", h.PlanMix)
	}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	resp, err := h.service.RevenueOverview()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "overview", resp)
}

func (h *AnalyticsHandler) Growth(c *gin.Context) {
	resp, err := h.service.RevenueGrowth()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "growth", resp)
}

func (h *AnalyticsHandler) PlanMix(c *gin.Context) {
	resp, err := h.service.PlanMix()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "planMix", resp)
}
