package handler

import (
	"net/http"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturesHandler struct{ svc service.FactureService }

func NewFacturesHandler(svc service.FactureService) *FacturesHandler {
	return &FacturesHandler{svc: svc}
}

func (h *FacturesHandler) Creer(c *gin.Context) {
	var req dto.CreerFactureRequest
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

func (h *FacturesHandler) Lister(c *gin.Context) {
	var filter dto.FactureFilter
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

func (h *FacturesHandler) Obtenir(c *gin.Context) {
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

func (h *FacturesHandler) Actualiser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualiserFactureRequest
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

func (h *FacturesHandler) Supprimer(c *gin.Context) {
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

// TelechargerPDF streams the generated invoice PDF.
func (h *FacturesHandler) TelechargerPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
