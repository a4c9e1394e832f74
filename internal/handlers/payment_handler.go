package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/payment"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type PaymentHandler struct {
	*BaseHandler
	service services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, service: service}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/payments")
	{
		// The gateway posts here without our auth.
		group.POST("/webhook", h.Webhook)
		group.GET("/plans", h.ListPlans)

		authed := group.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/order", h.CreateOrder)
			authed.GET("/my", h.ListMine)
			authed.GET("/subscription", h.GetSubscription)
		}
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateOrder(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "order", resp)
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	var notification payment.WebhookNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid webhook payload").WithError(err))
		return
	}

	if err := h.service.ProcessWebhook(&notification); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.ListUserPayments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "payments", resp)
}

func (h *PaymentHandler) GetSubscription(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "subscription", resp)
}

func (h *PaymentHandler) ListPlans(c *gin.Context) {
	resp, err := h.service.ListPlans()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "plans", resp)
}
