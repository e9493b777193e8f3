package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendr/internal/apperr"
	"vendr/internal/model"
)

func venda(metodo string, qtd int, preco float64, status string) model.Venda {
	return model.Venda{
		ID:              uuid.New(),
		ProdutoID:       uuid.New(),
		UsuarioID:       uuid.New(),
		Quantidade:      qtd,
		PrecoUnitario:   decimal.NewFromFloat(preco),
		MetodoPagamento: metodo,
		Status:          status,
	}
}

func TestCalcularTotais_CenarioCaixa(t *testing.T) {
	// pix 50 + dinheiro 30 + cartao 20 = 100
	vendas := []model.Venda{
		venda(model.MetodoPix, 2, 25, model.VendaConfirmada),
		venda(model.MetodoDinheiro, 1, 30, model.VendaConfirmada),
		venda(model.MetodoCartao, 1, 20, model.VendaConfirmada),
	}

	totais, err := CalcularTotais(vendas)
	require.NoError(t, err)

	assert.Equal(t, "100", totais.TotalVendido.String())
	assert.Equal(t, "50", totais.PorMetodo[model.MetodoPix].String())
	assert.Equal(t, "30", totais.PorMetodo[model.MetodoDinheiro].String())
	assert.Equal(t, "20", totais.PorMetodo[model.MetodoCartao].String())
	assert.Equal(t, 3, totais.Quantidade)

	// Saldo teórico: 100 (abertura) + 30 (vendas em dinheiro) = 130
	teorico := SaldoTeorico(decimal.NewFromInt(100), totais.Dinheiro(), decimal.Zero)
	assert.Equal(t, "130", teorico.String())

	// Contado 125 → quebra -5 (falta)
	quebra := Quebra(decimal.NewFromInt(125), teorico)
	assert.Equal(t, "-5", quebra.String())
}

func TestCalcularTotais_InvarianteDePermutacao(t *testing.T) {
	a := venda(model.MetodoPix, 3, 10.25, model.VendaConfirmada)
	b := venda(model.MetodoDinheiro, 1, 99.5, model.VendaConfirmada)
	c := venda(model.MetodoPix, 2, 0.75, model.VendaConfirmada)
	d := venda(model.MetodoCartao, 4, 12, model.VendaPendente)

	ordens := [][]model.Venda{
		{a, b, c, d},
		{d, c, b, a},
		{b, d, a, c},
	}
	var primeiro *Totais
	for _, vendas := range ordens {
		totais, err := CalcularTotais(vendas)
		require.NoError(t, err)
		if primeiro == nil {
			primeiro = totais
			continue
		}
		assert.True(t, primeiro.TotalVendido.Equal(totais.TotalVendido))
		assert.Equal(t, primeiro.Quantidade, totais.Quantidade)
		for metodo, valor := range primeiro.PorMetodo {
			assert.True(t, valor.Equal(totais.PorMetodo[metodo]), metodo)
		}
	}
}

func TestCalcularTotais_SomenteConfirmadas(t *testing.T) {
	vendas := []model.Venda{
		venda(model.MetodoPix, 1, 50, model.VendaConfirmada),
		venda(model.MetodoPix, 1, 70, model.VendaPendente),
		venda(model.MetodoDinheiro, 1, 90, model.VendaCancelada),
	}
	totais, err := CalcularTotais(vendas)
	require.NoError(t, err)
	assert.Equal(t, "50", totais.TotalVendido.String())
	assert.Equal(t, 1, totais.Quantidade)
	_, temDinheiro := totais.PorMetodo[model.MetodoDinheiro]
	assert.False(t, temDinheiro)
}

func TestCalcularTotais_ListaVazia(t *testing.T) {
	totais, err := CalcularTotais(nil)
	require.NoError(t, err)
	assert.True(t, totais.TotalVendido.IsZero())
	assert.Empty(t, totais.PorMetodo)
	assert.Equal(t, "0", TicketMedio(totais.TotalVendido, totais.Quantidade).String())
}

func TestCalcularTotais_QuantidadeNegativa(t *testing.T) {
	vendas := []model.Venda{
		venda(model.MetodoPix, 1, 50, model.VendaConfirmada),
		venda(model.MetodoDinheiro, -2, 10, model.VendaConfirmada),
	}
	totais, err := CalcularTotais(vendas)
	assert.ErrorIs(t, err, apperr.ErrDadosInconsistentes)
	assert.Nil(t, totais) // no partial totals
}

func TestCalcularTotais_PrecoNegativo(t *testing.T) {
	// A malformed pending row still poisons the batch.
	vendas := []model.Venda{
		venda(model.MetodoPix, 1, -0.25, model.VendaPendente),
	}
	_, err := CalcularTotais(vendas)
	assert.ErrorIs(t, err, apperr.ErrDadosInconsistentes)
}

func TestCalcularComissao(t *testing.T) {
	got, err := CalcularComissao(decimal.NewFromInt(100), decimal.NewFromFloat(0.10))
	require.NoError(t, err)
	assert.Equal(t, "10", got.String())

	got, err = CalcularComissao(decimal.NewFromFloat(250.50), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = CalcularComissao(decimal.NewFromInt(80), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "80", got.String())
}

func TestCalcularComissao_TaxaForaDoIntervalo(t *testing.T) {
	_, err := CalcularComissao(decimal.NewFromInt(100), decimal.NewFromFloat(1.5))
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)

	_, err = CalcularComissao(decimal.NewFromInt(100), decimal.NewFromFloat(-0.1))
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)

	_, err = CalcularComissao(decimal.NewFromInt(-1), decimal.NewFromFloat(0.1))
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)
}

func TestQuebra_PreservaSinal(t *testing.T) {
	assert.Equal(t, "5", Quebra(decimal.NewFromInt(135), decimal.NewFromInt(130)).String())
	assert.Equal(t, "-5", Quebra(decimal.NewFromInt(125), decimal.NewFromInt(130)).String())
	assert.True(t, Quebra(decimal.NewFromInt(130), decimal.NewFromInt(130)).IsZero())
}

func TestTicketMedio(t *testing.T) {
	assert.Equal(t, "50", TicketMedio(decimal.NewFromInt(100), 2).String())
	assert.Equal(t, "33.33", TicketMedio(decimal.NewFromInt(100), 3).String())
	assert.Equal(t, "0", TicketMedio(decimal.NewFromInt(0), 0).String())
}

func TestCalcular_ResultadoCompleto(t *testing.T) {
	vendas := []model.Venda{
		venda(model.MetodoPix, 2, 25, model.VendaConfirmada),
		venda(model.MetodoDinheiro, 1, 30, model.VendaConfirmada),
		venda(model.MetodoCartao, 1, 20, model.VendaConfirmada),
	}
	res, err := Calcular(vendas, decimal.NewFromFloat(0.10), decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "100", res.TotalVendido.String())
	assert.Equal(t, "10", res.ComissaoDevida.String())
	assert.Equal(t, "130", res.SaldoTeorico.String())
	assert.Equal(t, "33.33", res.TicketMedio.String())
	assert.Nil(t, res.Quebra)
}

func TestCalcular_MovimentosManuais(t *testing.T) {
	vendas := []model.Venda{
		venda(model.MetodoDinheiro, 1, 30, model.VendaConfirmada),
	}
	// Sangria de 20 registrada como movimento negativo.
	res, err := Calcular(vendas, decimal.Zero, decimal.NewFromInt(100), decimal.NewFromInt(-20))
	require.NoError(t, err)
	assert.Equal(t, "110", res.SaldoTeorico.String())
}
