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

type VendedorHandler struct{ svc service.VendedorService }

func NewVendedorHandler(svc service.VendedorService) *VendedorHandler {
	return &VendedorHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um vendedor da empresa
// @Tags vendedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarVendedorRequest true "Dados do vendedor"
// @Success 201 {object} dto.VendedorResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/vendedores [post]
func (h *VendedorHandler) Criar(c *gin.Context) {
	var req dto.CriarVendedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok || conta.EmpresaID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Operação restrita a contas de empresa"))
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), *conta.EmpresaID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Atualizar updates name, commission rate or active flag.
func (h *VendedorHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarVendedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar lists sellers of the caller's empresa.
func (h *VendedorHandler) Listar(c *gin.Context) {
	conta, ok := middleware.Conta(c)
	if !ok || conta.EmpresaID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Operação restrita a contas de empresa"))
		return
	}
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), *conta.EmpresaID, incluirInativos)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Comissao godoc
// @Summary Extrato de comissão do vendedor no período
// @Tags vendedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do vendedor"
// @Param de query string false "Data inicial (AAAA-MM-DD)"
// @Param ate query string false "Data final (AAAA-MM-DD)"
// @Success 200 {object} dto.ComissaoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendedores/{id}/comissao [get]
func (h *VendedorHandler) Comissao(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	de, ate, err := parsePeriodo(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Período inválido (use AAAA-MM-DD)"))
		return
	}
	resp, err := h.svc.Comissao(c.Request.Context(), id, de, ate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
