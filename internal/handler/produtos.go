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

type ProdutoHandler struct{ svc service.ProdutoService }

func NewProdutoHandler(svc service.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um produto no catálogo
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Dados do produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos [post]
func (h *ProdutoHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
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

// Atualizar updates catalog fields of a product.
func (h *ProdutoHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarProdutoRequest
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

// Listar lists the caller's catalog.
func (h *ProdutoHandler) Listar(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), conta, incluirInativos)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AjustarEstoque godoc
// @Summary Aplica um ajuste manual de estoque (delta com sinal)
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AjustarEstoqueRequest true "Ajuste"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/{id}/estoque [post]
func (h *ProdutoHandler) AjustarEstoque(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), conta, id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos returns the immutable stock ledger of a product.
func (h *ProdutoHandler) Movimentos(c *gin.Context) {
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
	movs, err := h.svc.Movimentos(c.Request.Context(), conta, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movs})
}

// EstoqueBaixo flags products under their minimum stock level.
func (h *ProdutoHandler) EstoqueBaixo(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.EstoqueBaixo(c.Request.Context(), conta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
