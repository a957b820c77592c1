package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type AbonnesHandler struct {
	svc        service.AbonneService
	factureSvc service.FactureService
}

func NewAbonnesHandler(svc service.AbonneService, factureSvc service.FactureService) *AbonnesHandler {
	return &AbonnesHandler{svc: svc, factureSvc: factureSvc}
}

func (h *AbonnesHandler) Creer(c *gin.Context) {
	var req dto.CreerAbonneRequest
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

func (h *AbonnesHandler) Lister(c *gin.Context) {
	var filter dto.AbonneFilter
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

// Obtenir includes the subscriber's factures and solde_du.
func (h *AbonnesHandler) Obtenir(c *gin.Context) {
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

func (h *AbonnesHandler) Actualiser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualiserAbonneRequest
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

func (h *AbonnesHandler) Desactiver(c *gin.Context) {
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

func (h *AbonnesHandler) Reactiver(c *gin.Context) {
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

// NonFacturees lists the subscriber's consumptions awaiting billing.
func (h *AbonnesHandler) NonFacturees(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.factureSvc.NonFacturees(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
