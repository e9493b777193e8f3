package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendr/internal/apierror"
	"vendr/internal/dto"
	"vendr/internal/middleware"
	"vendr/internal/service"
)

type KitHandler struct{ svc service.KitService }

func NewKitHandler(svc service.KitService) *KitHandler { return &KitHandler{svc: svc} }

// Montar godoc
// @Summary Monta um kit de produtos para um vendedor
// @Tags kits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarKitRequest true "Itens do kit"
// @Success 201 {object} dto.KitResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/kits [post]
func (h *KitHandler) Montar(c *gin.Context) {
	var req dto.CriarKitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok || conta.EmpresaID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Operação restrita a contas de empresa"))
		return
	}
	resp, err := h.svc.Montar(c.Request.Context(), *conta.EmpresaID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Devolver godoc
// @Summary Devolve um kit, restaurando o estoque de todos os itens
// @Tags kits
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do kit"
// @Success 200 {object} dto.KitResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/kits/{id}/devolver [post]
func (h *KitHandler) Devolver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	conta, ok := middleware.Conta(c)
	if !ok || conta.EmpresaID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Operação restrita a contas de empresa"))
		return
	}
	resp, err := h.svc.Devolver(c.Request.Context(), *conta.EmpresaID, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar lists kits of a seller, optionally for a single day.
func (h *KitHandler) Listar(c *gin.Context) {
	vendedorID, err := uuid.Parse(c.Param("vendedorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var dia time.Time
	if v := c.Query("dia"); v != "" {
		dia, err = time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Dia inválido (use AAAA-MM-DD)"))
			return
		}
	}
	resp, err := h.svc.ListarPorVendedor(c.Request.Context(), vendedorID, dia)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
