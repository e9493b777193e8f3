// Package export renders settlement results and row sets into downloadable
// artifacts (CSV text, PDF bytes). Pure formatting: identical input produces
// identical output, and an empty data set still yields a valid header-only
// file. Offering the artifact for download is the handler's concern.
package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"vendr/internal/dto"
	"vendr/internal/model"
)

// dd/mm/yyyy, the pt-BR display format used across every export.
const dateLayout = "02/01/2006"

// VendasCSV writes one row per sale. Amounts are plain decimals (123.45),
// dates dd/mm/yyyy.
func VendasCSV(w io.Writer, vendas []model.Venda) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Data", "Produto", "Quantidade", "Preço Unitário", "Total", "Método", "Status"}); err != nil {
		return err
	}
	for i := range vendas {
		v := &vendas[i]
		nome := ""
		if v.Produto != nil {
			nome = v.Produto.Nome
		}
		if err := cw.Write([]string{
			v.CreatedAt.Format(dateLayout),
			nome,
			intString(v.Quantidade),
			v.PrecoUnitario.StringFixed(2),
			v.Total().StringFixed(2),
			v.MetodoPagamento,
			v.Status,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ResumoCSV writes the settlement summary: one totals row followed by the
// per-method breakdown in stable (sorted) order.
func ResumoCSV(w io.Writer, resumo *dto.ResumoResponse) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Período", "Total Vendido", "Comissão", "Quantidade", "Ticket Médio", "Despesas"},
		{
			resumo.Periodo,
			resumo.TotalVendido.StringFixed(2),
			resumo.ComissaoDevida.StringFixed(2),
			intString(resumo.Quantidade),
			resumo.TicketMedio.StringFixed(2),
			resumo.TotalDespesas.StringFixed(2),
		},
		{"Método", "Valor"},
	}
	for _, metodo := range sortedMethods(resumo.PorMetodo) {
		rows = append(rows, []string{metodo, resumo.PorMetodo[metodo].StringFixed(2)})
	}
	return cw.WriteAll(rows)
}

// UsuariosCSV exports the account list for an empresa.
func UsuariosCSV(w io.Writer, usuarios []model.Usuario, nomeEmpresa string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Nome", "Email", "Role", "Empresa", "Tipo", "Data Criação"}); err != nil {
		return err
	}
	for i := range usuarios {
		u := &usuarios[i]
		tipo := "interno"
		if u.Role == "solo" {
			tipo = "autônomo"
		}
		if err := cw.Write([]string{
			u.Nome,
			u.Email,
			u.Role,
			nomeEmpresa,
			tipo,
			u.CreatedAt.Format(dateLayout),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sortedMethods(porMetodo map[string]decimal.Decimal) []string {
	metodos := make([]string, 0, len(porMetodo))
	for m := range porMetodo {
		metodos = append(metodos, m)
	}
	sort.Strings(metodos)
	return metodos
}

func intString(n int) string {
	return strconv.Itoa(n)
}
