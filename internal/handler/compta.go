package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type ComptaHandler struct{ svc service.ComptaService }

func NewComptaHandler(svc service.ComptaService) *ComptaHandler {
	return &ComptaHandler{svc: svc}
}

func (h *ComptaHandler) Enregistrer(c *gin.Context) {
	var req dto.CreerEcritureRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Enregistrer(c.Request.Context(), acteur(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComptaHandler) Lister(c *gin.Context) {
	var filter dto.ComptaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("invalid_input", err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComptaHandler) Solde(c *gin.Context) {
	resp, err := h.svc.Solde(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComptaHandler) Rapport(c *gin.Context) {
	resp, err := h.svc.Rapport(c.Request.Context(), c.Query("date_debut"), c.Query("date_fin"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
