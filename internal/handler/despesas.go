package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendr/internal/apierror"
	"vendr/internal/dto"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type DespesaHandler struct{ svc service.DespesaService }

func NewDespesaHandler(svc service.DespesaService) *DespesaHandler {
	return &DespesaHandler{svc: svc}
}

// Criar godoc
// @Summary Registra uma despesa
// @Tags despesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarDespesaRequest true "Dados da despesa"
// @Success 201 {object} dto.DespesaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/despesas [post]
func (h *DespesaHandler) Criar(c *gin.Context) {
	var req dto.CriarDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), conta, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Atualizar updates description, value, category or paid flag.
func (h *DespesaHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), conta, id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover deletes an expense.
func (h *DespesaHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	if err := h.svc.Remover(c.Request.Context(), conta, id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar returns expenses of the period scoped to the caller's account.
func (h *DespesaHandler) Listar(c *gin.Context) {
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
	resp, err := h.svc.Listar(c.Request.Context(), conta, de, ate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Total returns the period total grouped by category.
func (h *DespesaHandler) Total(c *gin.Context) {
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
	resp, err := h.svc.TotalDoPeriodo(c.Request.Context(), conta, de, ate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
