package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type FecharCaixaRequest struct {
	SessaoCaixaID string          `json:"sessao_caixa_id" validate:"required,uuid"`
	SaldoContado  decimal.Decimal `json:"saldo_contado"   validate:"min=0"`
}

type MovimentoManualRequest struct {
	SessaoCaixaID string          `json:"sessao_caixa_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"            validate:"required,oneof=entrada_manual saida_manual"`
	Valor         decimal.Decimal `json:"valor"           validate:"required,gt=0"`
	Descricao     string          `json:"descricao"       validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessaoCaixaResponse struct {
	ID           string          `json:"id"`
	Escopo       string          `json:"escopo"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	Status       string          `json:"status"`
	AbertaEm     string          `json:"aberta_em"`
	FechadaEm    *string         `json:"fechada_em,omitempty"`

	SaldoTeorico *decimal.Decimal `json:"saldo_teorico,omitempty"`
	SaldoContado *decimal.Decimal `json:"saldo_contado,omitempty"`
	Quebra       *decimal.Decimal `json:"quebra,omitempty"`
}

type FechamentoResponse struct {
	SessaoCaixaID string                     `json:"sessao_caixa_id"`
	TotalVendido  decimal.Decimal            `json:"total_vendido"`
	PorMetodo     map[string]decimal.Decimal `json:"por_metodo"`
	SaldoTeorico  decimal.Decimal            `json:"saldo_teorico"`
	SaldoContado  decimal.Decimal            `json:"saldo_contado"`
	// Quebra: positive = sobra, negative = falta.
	Quebra decimal.Decimal `json:"quebra"`
	Status string          `json:"status"`
}
