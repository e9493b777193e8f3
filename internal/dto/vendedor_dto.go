package dto

import "github.com/shopspring/decimal"

type CriarVendedorRequest struct {
	Nome         string          `json:"nome"          validate:"required,min=2"`
	TaxaComissao decimal.Decimal `json:"taxa_comissao" validate:"min=0,max=1"`
}

type AtualizarVendedorRequest struct {
	Nome         *string          `json:"nome"          validate:"omitempty,min=2"`
	TaxaComissao *decimal.Decimal `json:"taxa_comissao" validate:"omitempty,min=0,max=1"`
	Ativo        *bool            `json:"ativo"`
}

type VendedorResponse struct {
	ID           string          `json:"id"`
	Nome         string          `json:"nome"`
	TaxaComissao decimal.Decimal `json:"taxa_comissao"`
	Ativo        bool            `json:"ativo"`
	CreatedAt    string          `json:"created_at"`
}

// ComissaoResponse is a seller's settlement statement for a period.
type ComissaoResponse struct {
	VendedorID     string                     `json:"vendedor_id"`
	Periodo        string                     `json:"periodo"`
	TotalVendido   decimal.Decimal            `json:"total_vendido"`
	TaxaComissao   decimal.Decimal            `json:"taxa_comissao"`
	ComissaoDevida decimal.Decimal            `json:"comissao_devida"`
	PorMetodo      map[string]decimal.Decimal `json:"por_metodo"`
	Quantidade     int                        `json:"quantidade"`
	TicketMedio    decimal.Decimal            `json:"ticket_medio"`
}
