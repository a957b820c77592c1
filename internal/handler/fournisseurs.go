package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type FournisseurHandler struct{ svc service.FournisseurService }

func NewFournisseurHandler(svc service.FournisseurService) *FournisseurHandler {
	return &FournisseurHandler{svc: svc}
}

func (h *FournisseurHandler) Creer(c *gin.Context) {
	var req dto.CreerFournisseurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), acteur(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FournisseurHandler) Lister(c *gin.Context) {
	var filter dto.FournisseurFilter
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

func (h *FournisseurHandler) Obtenir(c *gin.Context) {
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

func (h *FournisseurHandler) Actualiser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualiserFournisseurRequest
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

func (h *FournisseurHandler) Desactiver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactiver(c.Request.Context(), acteur(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FournisseurHandler) Reactiver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactiver(c.Request.Context(), acteur(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
