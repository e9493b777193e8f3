package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vendr/internal/apierror"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Hoje godoc
// @Summary Resumo do dia corrente (cacheado)
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumoResponse
// @Router /v1/dashboard/hoje [get]
func (h *DashboardHandler) Hoje(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.ResumoDoDia(c.Request.Context(), conta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Periodo returns the uncached summary for an arbitrary window.
func (h *DashboardHandler) Periodo(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	de, ate, err := parsePeriodo(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Período inválido (use AAAA-MM-DD)"))
		return
	}
	resp, err := h.svc.ResumoDoPeriodo(c.Request.Context(), conta, de, ate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
