package dto

import "github.com/shopspring/decimal"

// ResumoResponse is the dashboard/report aggregate for a period.
type ResumoResponse struct {
	Periodo        string                     `json:"periodo"`
	TotalVendido   decimal.Decimal            `json:"total_vendido"`
	ComissaoDevida decimal.Decimal            `json:"comissao_devida"`
	PorMetodo      map[string]decimal.Decimal `json:"por_metodo"`
	Quantidade     int                        `json:"quantidade"`
	TicketMedio    decimal.Decimal            `json:"ticket_medio"`
	TotalDespesas  decimal.Decimal            `json:"total_despesas"`
	TopProduto     string                     `json:"top_produto"`
}
