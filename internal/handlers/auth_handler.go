package handlers

import (
	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/auth"
	"prepvio_backend/internal/config"
	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	service services.AuthService
}

func NewAuthHandler(base *BaseHandler, service services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/admin/login", h.AdminLogin)
		group.POST("/logout", h.Logout)

		authed := group.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/me", h.Me)
			authed.POST("/change-password", h.ChangePassword)
		}
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookie(c, auth.AudienceUser, resp.Token)
	h.Created(c, "auth", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, auth.AudienceUser)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, auth.AudienceAdmin)
}

func (h *AuthHandler) login(c *gin.Context, audience string) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(&req, audience)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookie(c, audience, resp.Token)
	h.OK(c, "auth", resp)
}

// Logout clears both configured cookies; the caller may hold either.
func (h *AuthHandler) Logout(c *gin.Context) {
	cfg := config.GetConfig()
	c.SetCookie(cfg.Auth.AdminCookie, "", -1, "/", "", false, true)
	c.SetCookie(cfg.Auth.UserCookie, "", -1, "/", "", false, true)
	h.NoContentOK(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "user", resp)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContentOK(c)
}

// setAuthCookie picks the cookie name from the audience, never from the
// request origin.
func (h *AuthHandler) setAuthCookie(c *gin.Context, audience, token string) {
	cfg := config.GetConfig()
	name := cfg.Auth.UserCookie
	if audience == auth.AudienceAdmin {
		name = cfg.Auth.AdminCookie
	}
	maxAge := cfg.JWT.TTL * 60
	c.SetCookie(name, token, maxAge, "/", "", cfg.Server.Env == "production", true)
}
