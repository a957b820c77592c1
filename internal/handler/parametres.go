package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type ParametresHandler struct{ svc service.ParametresService }

func NewParametresHandler(svc service.ParametresService) *ParametresHandler {
	return &ParametresHandler{svc: svc}
}

func (h *ParametresHandler) Obtenir(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParametresHandler) Actualiser(c *gin.Context) {
	var req dto.ActualiserParametresRequest
	if !bindStrict(c, &req) {
		return
	}
	resp, err := h.svc.Actualiser(c.Request.Context(), acteur(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
