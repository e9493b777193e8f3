// Package settlement holds the pure aggregation functions behind cash-session
// closing, commission statements, and dashboards. Everything here operates on
// already-fetched rows — no I/O, no retries, no hidden state. Callers fetch,
// settlement computes, callers persist or render.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vendr/internal/apperr"
	"vendr/internal/model"
)

// Totais is the aggregate of a set of sale rows.
type Totais struct {
	// TotalVendido sums Quantidade × PrecoUnitario over confirmed rows only.
	TotalVendido decimal.Decimal
	// PorMetodo buckets the confirmed amounts by payment method. Methods
	// with no sales are absent from the map.
	PorMetodo map[string]decimal.Decimal
	// Quantidade is the number of confirmed sale rows.
	Quantidade int
}

// CalcularTotais aggregates sale rows into totals and a per-method breakdown.
// Only rows with status confirmada accumulate, but every row is validated:
// a negative quantity or unit price anywhere in the batch fails the whole
// aggregation with ErrDadosInconsistentes. Addition is associative and
// commutative on decimals, so the result does not depend on row order.
func CalcularTotais(vendas []model.Venda) (*Totais, error) {
	t := &Totais{
		TotalVendido: decimal.Zero,
		PorMetodo:    make(map[string]decimal.Decimal),
	}
	for i := range vendas {
		v := &vendas[i]
		if v.Quantidade < 0 {
			return nil, fmt.Errorf("%w: venda %s com quantidade negativa (%d)",
				apperr.ErrDadosInconsistentes, v.ID, v.Quantidade)
		}
		if v.PrecoUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: venda %s com preço unitário negativo (%s)",
				apperr.ErrDadosInconsistentes, v.ID, v.PrecoUnitario)
		}
		if v.Status != model.VendaConfirmada {
			continue
		}
		total := v.Total()
		t.TotalVendido = t.TotalVendido.Add(total)
		bucket, ok := t.PorMetodo[v.MetodoPagamento]
		if !ok {
			bucket = decimal.Zero
		}
		t.PorMetodo[v.MetodoPagamento] = bucket.Add(total)
		t.Quantidade++
	}
	return t, nil
}

// Dinheiro returns the cash bucket, zero when no cash sale exists.
func (t *Totais) Dinheiro() decimal.Decimal {
	if v, ok := t.PorMetodo[model.MetodoDinheiro]; ok {
		return v
	}
	return decimal.Zero
}

// CalcularComissao returns totalVendido × taxa. The rate must lie in [0,1]
// and the total must be non-negative; anything else is ErrValorInvalido.
func CalcularComissao(totalVendido, taxa decimal.Decimal) (decimal.Decimal, error) {
	if totalVendido.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: total vendido negativo (%s)", apperr.ErrValorInvalido, totalVendido)
	}
	if taxa.IsNegative() || taxa.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: taxa de comissão fora de [0,1] (%s)", apperr.ErrValorInvalido, taxa)
	}
	return totalVendido.Mul(taxa), nil
}

// SaldoTeorico is the cash expected in the drawer: opening balance plus cash
// inflows minus cash outflows. Pix and cartão never touch the drawer.
func SaldoTeorico(saldoInicial, entradasDinheiro, saidasDinheiro decimal.Decimal) decimal.Decimal {
	return saldoInicial.Add(entradasDinheiro).Sub(saidasDinheiro)
}

// Quebra is saldoContado − saldoTeorico with sign preserved: positive means
// sobra (surplus), negative means falta (shortage). Any real difference is a
// valid result to surface, never clamped.
func Quebra(saldoContado, saldoTeorico decimal.Decimal) decimal.Decimal {
	return saldoContado.Sub(saldoTeorico)
}

// TicketMedio is totalVendido / quantidade, defined as zero for an empty set.
func TicketMedio(totalVendido decimal.Decimal, quantidade int) decimal.Decimal {
	if quantidade == 0 {
		return decimal.Zero
	}
	return totalVendido.Div(decimal.NewFromInt(int64(quantidade))).Round(2)
}

// Resultado is the derived settlement for a period — not persisted as its own
// entity, rendered by dashboards and exporters.
type Resultado struct {
	TotalVendido   decimal.Decimal            `json:"total_vendido"`
	ComissaoDevida decimal.Decimal            `json:"comissao_devida"`
	PorMetodo      map[string]decimal.Decimal `json:"por_metodo"`
	Quantidade     int                        `json:"quantidade"`
	TicketMedio    decimal.Decimal            `json:"ticket_medio"`
	SaldoTeorico   decimal.Decimal            `json:"saldo_teorico"`
	// Quebra is nil until a counted balance exists (session close).
	Quebra *decimal.Decimal `json:"quebra,omitempty"`
}

// Calcular builds the full settlement for a set of sale rows: totals, the
// commission at the given rate, and the theoretical cash balance starting
// from saldoInicial. Manual cash movements are passed as a pre-summed signed
// amount (saídas negative, matching the movement ledger).
func Calcular(vendas []model.Venda, taxaComissao, saldoInicial, movimentosDinheiro decimal.Decimal) (*Resultado, error) {
	totais, err := CalcularTotais(vendas)
	if err != nil {
		return nil, err
	}
	comissao, err := CalcularComissao(totais.TotalVendido, taxaComissao)
	if err != nil {
		return nil, err
	}
	return &Resultado{
		TotalVendido:   totais.TotalVendido,
		ComissaoDevida: comissao,
		PorMetodo:      totais.PorMetodo,
		Quantidade:     totais.Quantidade,
		TicketMedio:    TicketMedio(totais.TotalVendido, totais.Quantidade),
		SaldoTeorico:   SaldoTeorico(saldoInicial, totais.Dinheiro().Add(movimentosDinheiro), decimal.Zero),
	}, nil
}
