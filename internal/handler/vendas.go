package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendr/internal/apierror"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type VendaHandler struct {
	svc       service.VendaService
	dashboard service.DashboardService
}

func NewVendaHandler(svc service.VendaService, dashboard service.DashboardService) *VendaHandler {
	return &VendaHandler{svc: svc, dashboard: dashboard}
}

// Registrar godoc
// @Summary Registra uma venda (pendente ou já confirmada)
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVendaRequest true "Dados da venda"
// @Success 201 {object} dto.VendaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/vendas [post]
func (h *VendaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Token malformado"))
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), conta, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.dashboard.Invalidar(c.Request.Context(), conta)
	c.JSON(http.StatusCreated, resp)
}

// Confirmar godoc
// @Summary Confirma uma venda pendente
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.VendaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/vendas/{id}/confirmar [post]
func (h *VendaHandler) Confirmar(c *gin.Context) {
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
	resp, err := h.svc.Confirmar(c.Request.Context(), conta, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.dashboard.Invalidar(c.Request.Context(), conta)
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela uma venda, restaurando o estoque quando confirmada
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/vendas/{id} [delete]
func (h *VendaHandler) Cancelar(c *gin.Context) {
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
	motivo := c.DefaultQuery("motivo", "cancelamento manual")
	if err := h.svc.Cancelar(c.Request.Context(), conta, id, motivo); err != nil {
		respondErr(c, err)
		return
	}
	h.dashboard.Invalidar(c.Request.Context(), conta)
	c.Status(http.StatusNoContent)
}

// Listar returns the paginated sales list scoped to the caller's account.
func (h *VendaHandler) Listar(c *gin.Context) {
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
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := dto.VendaFilter{
		DataDe: de,
		DataAte: ate,
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	switch conta.Escopo {
	case domain.EscopoVendedor:
		filter.VendedorID = conta.VendedorID
	case domain.EscopoEmpresa:
		filter.EmpresaID = conta.EmpresaID
	default:
		uid := conta.UsuarioID
		filter.UsuarioID = &uid
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
