package dto

import "github.com/shopspring/decimal"

type CriarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required,min=2"`
	SKU           *string         `json:"sku"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"required,gt=0"`
	EstoqueAtual  int             `json:"estoque_atual"  validate:"min=0"`
	EstoqueMinimo int             `json:"estoque_minimo" validate:"min=0"`
}

type AtualizarProdutoRequest struct {
	Nome          *string          `json:"nome"           validate:"omitempty,min=2"`
	SKU           *string          `json:"sku"`
	PrecoVenda    *decimal.Decimal `json:"preco_venda"    validate:"omitempty,gt=0"`
	EstoqueMinimo *int             `json:"estoque_minimo" validate:"omitempty,min=0"`
	Ativo         *bool            `json:"ativo"`
}

type AjustarEstoqueRequest struct {
	// Quantidade is the signed delta to apply (positive = entrada).
	Quantidade int    `json:"quantidade" validate:"required"`
	Motivo     string `json:"motivo"     validate:"required,min=3"`
}

type ProdutoResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	SKU           *string         `json:"sku,omitempty"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"`
	EstoqueAtual  int             `json:"estoque_atual"`
	EstoqueMinimo int             `json:"estoque_minimo"`
	Ativo         bool            `json:"ativo"`
}

// ─── Kits ────────────────────────────────────────────────────────────────────

type KitItemRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
}

type CriarKitRequest struct {
	VendedorID string           `json:"vendedor_id" validate:"required,uuid"`
	Data       string           `json:"data"        validate:"required,datetime=2006-01-02"`
	Itens      []KitItemRequest `json:"itens"       validate:"required,min=1,dive"`
}

type KitItemResponse struct {
	ProdutoID  string `json:"produto_id"`
	Produto    string `json:"produto"`
	Quantidade int    `json:"quantidade"`
}

type KitResponse struct {
	ID         string            `json:"id"`
	VendedorID string            `json:"vendedor_id"`
	Data       string            `json:"data"`
	Status     string            `json:"status"`
	Itens      []KitItemResponse `json:"itens"`
}
