package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendr/internal/dto"
	"vendr/internal/model"
)

func vendaComProduto(nome string, qtd int, preco float64, metodo string) model.Venda {
	return model.Venda{
		ID:              uuid.New(),
		Produto:         &model.Produto{Nome: nome},
		Quantidade:      qtd,
		PrecoUnitario:   decimal.NewFromFloat(preco),
		MetodoPagamento: metodo,
		Status:          model.VendaConfirmada,
		CreatedAt:       time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestVendasCSV(t *testing.T) {
	var buf bytes.Buffer
	vendas := []model.Venda{
		vendaComProduto("Água Mineral 500ml", 2, 2.25, model.MetodoPix),
		vendaComProduto("Coxinha", 1, 7.50, model.MetodoDinheiro),
	}
	require.NoError(t, VendasCSV(&buf, vendas))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Data", "Produto", "Quantidade", "Preço Unitário", "Total", "Método", "Status"}, records[0])
	assert.Equal(t, []string{"15/03/2026", "Água Mineral 500ml", "2", "2.25", "4.50", "pix", "confirmada"}, records[1])
	assert.Equal(t, "7.50", records[2][4])
}

func TestVendasCSV_Vazio(t *testing.T) {
	// Empty input still yields a valid header-only file.
	var buf bytes.Buffer
	require.NoError(t, VendasCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestVendasCSV_Deterministico(t *testing.T) {
	vendas := []model.Venda{vendaComProduto("Pastel", 3, 6, model.MetodoCartao)}
	var a, b bytes.Buffer
	require.NoError(t, VendasCSV(&a, vendas))
	require.NoError(t, VendasCSV(&b, vendas))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestResumoCSV_RoundTrip(t *testing.T) {
	resumo := &dto.ResumoResponse{
		Periodo:        "01/03/2026 - 31/03/2026",
		TotalVendido:   decimal.NewFromFloat(100),
		ComissaoDevida: decimal.NewFromFloat(10),
		PorMetodo: map[string]decimal.Decimal{
			model.MetodoPix:      decimal.NewFromFloat(50),
			model.MetodoDinheiro: decimal.NewFromFloat(30),
			model.MetodoCartao:   decimal.NewFromFloat(20),
		},
		Quantidade:    3,
		TicketMedio:   decimal.NewFromFloat(33.33),
		TotalDespesas: decimal.NewFromFloat(12.75),
	}

	var buf bytes.Buffer
	require.NoError(t, ResumoCSV(&buf, resumo))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// Totals row re-parses to the same values, within the 2-decimal rounding.
	total, err := decimal.NewFromString(records[1][1])
	require.NoError(t, err)
	assert.True(t, total.Equal(resumo.TotalVendido))

	comissao, err := decimal.NewFromString(records[1][2])
	require.NoError(t, err)
	assert.True(t, comissao.Equal(resumo.ComissaoDevida))

	// Method rows follow their header at index 2, in sorted order, and sum
	// back to the total.
	soma := decimal.Zero
	for _, rec := range records[3:] {
		v, err := decimal.NewFromString(rec[1])
		require.NoError(t, err)
		soma = soma.Add(v)
	}
	assert.True(t, soma.Equal(resumo.TotalVendido))
	assert.Equal(t, "cartao", records[3][0])
	assert.Equal(t, "dinheiro", records[4][0])
	assert.Equal(t, "pix", records[5][0])
}

func TestUsuariosCSV(t *testing.T) {
	usuarios := []model.Usuario{
		{
			Nome: "Maria Souza", Email: "maria@acme.com.br", Role: "dono",
			CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			Nome: "João Lima", Email: "joao@solo.com.br", Role: "solo",
			CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, UsuariosCSV(&buf, usuarios, "Acme Ltda"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Nome", "Email", "Role", "Empresa", "Tipo", "Data Criação"}, records[0])
	assert.Equal(t, "02/01/2026", records[1][5])
	assert.Equal(t, "autônomo", records[2][4])
}

func TestRelatorioPDF(t *testing.T) {
	resumo := &dto.ResumoResponse{
		Periodo:      "15/03/2026",
		TotalVendido: decimal.NewFromFloat(100),
		PorMetodo:    map[string]decimal.Decimal{model.MetodoPix: decimal.NewFromFloat(100)},
		Quantidade:   1,
		TicketMedio:  decimal.NewFromFloat(100),
		TopProduto:   "Coxinha",
	}
	vendas := []model.Venda{vendaComProduto("Coxinha", 1, 100, model.MetodoPix)}

	var buf bytes.Buffer
	require.NoError(t, RelatorioPDF(&buf, "Relatório de Vendas", resumo, vendas))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRelatorioPDF_Vazio(t *testing.T) {
	resumo := &dto.ResumoResponse{
		Periodo:      "15/03/2026",
		TotalVendido: decimal.Zero,
		TicketMedio:  decimal.Zero,
	}
	var buf bytes.Buffer
	require.NoError(t, RelatorioPDF(&buf, "Relatório de Vendas", resumo, nil))
	assert.NotZero(t, buf.Len())
}

func TestTruncarNome(t *testing.T) {
	assert.Equal(t, "Coxinha", truncarNome("Coxinha", 30))

	longo := "Coleção de bonecas de porcelana açoriana pintada à mão"
	curto := truncarNome(longo, 30)
	assert.True(t, utf8.ValidString(curto))
	assert.Equal(t, 30, utf8.RuneCountInString(curto))
	assert.True(t, strings.HasSuffix(curto, "…"))

	// the cut must never split an accented character in half
	acentuado := strings.Repeat("ç", 40)
	assert.True(t, utf8.ValidString(truncarNome(acentuado, 30)))
}
