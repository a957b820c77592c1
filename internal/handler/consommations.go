package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type ConsommationsHandler struct{ svc service.ConsommationService }

func NewConsommationsHandler(svc service.ConsommationService) *ConsommationsHandler {
	return &ConsommationsHandler{svc: svc}
}

func (h *ConsommationsHandler) Enregistrer(c *gin.Context) {
	var req dto.EnregistrerConsommationRequest
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

func (h *ConsommationsHandler) Lister(c *gin.Context) {
	var filter dto.ConsommationFilter
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

func (h *ConsommationsHandler) Obtenir(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsommationsHandler) Actualiser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualiserConsommationRequest
	if !bindStrict(c, &req) {
		return
	}
	resp, err := h.svc.Actualiser(c.Request.Context(), acteur(c), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsommationsHandler) Supprimer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Supprimer(c.Request.Context(), acteur(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsommationsHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context(), c.Query("date_debut"), c.Query("date_fin"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
