package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/middleware"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		// Login failures answer 401, not 403: the caller is not authenticated yet.
		if service.KindOf(err) == service.KindPermissionDenied {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "invalid_credentials", "detail": err.Error()})
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
