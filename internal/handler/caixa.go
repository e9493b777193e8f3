package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendr/internal/apierror"
	"vendr/internal/dto"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre uma nova sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.SessaoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), conta, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha a sessão informando o saldo contado
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Fechamento"
// @Success 200 {object} dto.FechamentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), conta, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimento godoc
// @Summary Registra uma entrada ou saída manual de dinheiro
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentoManualRequest true "Movimento manual"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/movimento [post]
func (h *CaixaHandler) RegistrarMovimento(c *gin.Context) {
	var req dto.MovimentoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	if err := h.svc.RegistrarMovimento(c.Request.Context(), conta, req); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ativa returns the currently open cash session for the authenticated account.
func (h *CaixaHandler) Ativa(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.SessaoAtiva(c.Request.Context(), conta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico returns a paginated list of past cash sessions.
func (h *CaixaHandler) Historico(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	sessoes, total, err := h.svc.Historico(c.Request.Context(), conta, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessoes, "total": total, "page": page, "limit": limit})
}
