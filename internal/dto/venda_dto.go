package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarVendaRequest struct {
	ProdutoID       string          `json:"produto_id"       validate:"required,uuid"`
	Quantidade      int             `json:"quantidade"       validate:"required,gt=0"`
	MetodoPagamento string          `json:"metodo_pagamento" validate:"required,oneof=pix cartao dinheiro"`
	// PrecoUnitario overrides the catalog price when set (negotiated sale).
	PrecoUnitario *decimal.Decimal `json:"preco_unitario" validate:"omitempty,min=0"`
	// Confirmada registers the sale already confirmed (point-of-sale flow);
	// false leaves it pendente for later confirmation.
	Confirmada bool `json:"confirmada"`
}

// VendaFilter mirrors the external querySales contract: seller/company/date
// range plus optional status.
type VendaFilter struct {
	VendedorID *uuid.UUID
	EmpresaID  *uuid.UUID
	UsuarioID  *uuid.UUID
	DataDe     time.Time
	DataAte    time.Time
	Status     string
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID              string          `json:"id"`
	Produto         string          `json:"produto"`
	ProdutoID       string          `json:"produto_id"`
	Quantidade      int             `json:"quantidade"`
	PrecoUnitario   decimal.Decimal `json:"preco_unitario"`
	Total           decimal.Decimal `json:"total"`
	MetodoPagamento string          `json:"metodo_pagamento"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
