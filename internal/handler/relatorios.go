package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vendr/internal/apierror"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type RelatorioHandler struct{ svc service.RelatorioService }

func NewRelatorioHandler(svc service.RelatorioService) *RelatorioHandler {
	return &RelatorioHandler{svc: svc}
}

// Resumo godoc
// @Summary Resumo de vendas, comissão e despesas do período
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param de query string false "Data inicial (AAAA-MM-DD)"
// @Param ate query string false "Data final (AAAA-MM-DD)"
// @Success 200 {object} dto.ResumoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/resumo [get]
func (h *RelatorioHandler) Resumo(c *gin.Context) {
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
	resp, err := h.svc.Resumo(c.Request.Context(), conta, de, ate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VendasCSV streams the period's sales as a CSV download.
func (h *RelatorioHandler) VendasCSV(c *gin.Context) {
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
	setDownloadHeaders(c, "text/csv", fmt.Sprintf("vendas_%s.csv", time.Now().Format("20060102")))
	if err := h.svc.ExportarVendasCSV(c.Request.Context(), conta, de, ate, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ResumoCSV streams the aggregated summary as a CSV download.
func (h *RelatorioHandler) ResumoCSV(c *gin.Context) {
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
	setDownloadHeaders(c, "text/csv", fmt.Sprintf("resumo_%s.csv", time.Now().Format("20060102")))
	if err := h.svc.ExportarResumoCSV(c.Request.Context(), conta, de, ate, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// PDF streams the full period report as a PDF download.
func (h *RelatorioHandler) PDF(c *gin.Context) {
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
	setDownloadHeaders(c, "application/pdf", fmt.Sprintf("relatorio_%s.pdf", time.Now().Format("20060102")))
	if err := h.svc.ExportarPDF(c.Request.Context(), conta, de, ate, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// UsuariosCSV exports the empresa's account roster.
func (h *RelatorioHandler) UsuariosCSV(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok || conta.EmpresaID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Operação restrita a contas de empresa"))
		return
	}
	setDownloadHeaders(c, "text/csv", "usuarios.csv")
	if err := h.svc.ExportarUsuariosCSV(c.Request.Context(), *conta.EmpresaID, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func setDownloadHeaders(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
