package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type InterviewHandler struct {
	*BaseHandler
	service services.InterviewService
	reports services.ReportService
}

func NewInterviewHandler(base *BaseHandler, service services.InterviewService, reports services.ReportService) *InterviewHandler {
	return &InterviewHandler{BaseHandler: base, service: service, reports: reports}
}

func (h *InterviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/interviews")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", h.Start)
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
		group.POST("/:id/transcript", h.AppendTranscript)
		group.POST("/:id/problems", h.AddProblem)
		group.POST("/:id/highlights", h.AddHighlight)
		group.POST("/:id/complete", h.Complete)
		group.POST("/:id/abandon", h.Abandon)
		group.POST("/:id/report", h.GenerateReport)
	}
}

func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.StartInterviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Start(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "interview", resp)
}

func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.ParsePagination(c)
	criteria := repositories.InterviewFilter{
		Status:   models.InterviewStatus(c.Query("status")),
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

func (h *InterviewHandler) GetByID(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(userID, h.IsAdmin(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "interview", resp)
}

func (h *InterviewHandler) AppendTranscript(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.AppendTranscriptRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.service.AppendTranscript(userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *InterviewHandler) AddProblem(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.AddProblemRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.service.AddProblem(c.Request.Context(), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *InterviewHandler) AddHighlight(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.AddHighlightRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.service.AddHighlight(userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteInterviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Complete(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "interview", resp)
}

func (h *InterviewHandler) Abandon(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.service.Abandon(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

// GenerateReport renders and stores the PDF for a completed session.
// Ownership is checked through the session lookup first.
func (h *InterviewHandler) GenerateReport(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	if _, err := h.service.GetByID(userID, h.IsAdmin(c), sessionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.reports.Generate(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "report", resp)
}
