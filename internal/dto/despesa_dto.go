package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CriarDespesaRequest struct {
	Descricao string          `json:"descricao" validate:"required,min=2"`
	Valor     decimal.Decimal `json:"valor"     validate:"required,gt=0"`
	Categoria string          `json:"categoria" validate:"required"`
	Data      string          `json:"data"      validate:"required,datetime=2006-01-02"`
	Paga      bool            `json:"paga"`
}

type AtualizarDespesaRequest struct {
	Descricao *string          `json:"descricao" validate:"omitempty,min=2"`
	Valor     *decimal.Decimal `json:"valor"     validate:"omitempty,gt=0"`
	Categoria *string          `json:"categoria"`
	Paga      *bool            `json:"paga"`
}

// DespesaFilter mirrors the external queryExpenses contract.
type DespesaFilter struct {
	EmpresaID *uuid.UUID
	UsuarioID *uuid.UUID
	DataDe    time.Time
	DataAte   time.Time
}

type DespesaResponse struct {
	ID        string          `json:"id"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria"`
	Data      string          `json:"data"`
	Paga      bool            `json:"paga"`
}

type TotalDespesasResponse struct {
	Total decimal.Decimal            `json:"total"`
	PorCategoria map[string]decimal.Decimal `json:"por_categoria"`
}
