package export

// pdf.go — report generation using go-pdf/fpdf.
// A4 settlement report with:
//   - Title and period header
//   - Summary block (total sold, commission, ticket médio, expenses, top product)
//   - Per-method breakdown
//   - Line-item sale table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"vendr/internal/dto"
	"vendr/internal/model"
)

// RelatorioPDF writes the settlement report to w. Deterministic for a fixed
// input: no timestamps beyond the period label are embedded.
func RelatorioPDF(w io.Writer, titulo string, resumo *dto.ResumoResponse, vendas []model.Venda) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Período: "+resumo.Periodo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary block ─────────────────────────────────────────────────────────
	col1 := contentW * 0.5
	col2 := contentW * 0.5

	summary := [][2]string{
		{"Total vendido", "R$ " + resumo.TotalVendido.StringFixed(2)},
		{"Comissão devida", "R$ " + resumo.ComissaoDevida.StringFixed(2)},
		{"Vendas", intString(resumo.Quantidade)},
		{"Ticket médio", "R$ " + resumo.TicketMedio.StringFixed(2)},
		{"Despesas do período", "R$ " + resumo.TotalDespesas.StringFixed(2)},
	}
	if resumo.TopProduto != "" {
		summary = append(summary, [2]string{"Produto mais vendido", resumo.TopProduto})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary {
		pdf.CellFormat(col1, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(col2, 7, row[1], "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.Ln(5)

	// ── Per-method breakdown ──────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Por método de pagamento", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, metodo := range sortedMethods(resumo.PorMetodo) {
		pdf.CellFormat(col1, 6, metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "R$ "+resumo.PorMetodo[metodo].StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// ── Line items ────────────────────────────────────────────────────────────
	if len(vendas) > 0 {
		wData := contentW * 0.16
		wProd := contentW * 0.36
		wQtd := contentW * 0.10
		wPreco := contentW * 0.19
		wTotal := contentW * 0.19

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(wData, 6, "Data", "B", 0, "L", false, 0, "")
		pdf.CellFormat(wProd, 6, "Produto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(wQtd, 6, "Qtd", "B", 0, "C", false, 0, "")
		pdf.CellFormat(wPreco, 6, "Unitário", "B", 0, "R", false, 0, "")
		pdf.CellFormat(wTotal, 6, "Total", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for i := range vendas {
			v := &vendas[i]
			nome := ""
			if v.Produto != nil {
				nome = v.Produto.Nome
			}
			nome = truncarNome(nome, 30)
			pdf.CellFormat(wData, 5, v.CreatedAt.Format(dateLayout), "", 0, "L", false, 0, "")
			pdf.CellFormat(wProd, 5, nome, "", 0, "L", false, 0, "")
			pdf.CellFormat(wQtd, 5, "x"+intString(v.Quantidade), "", 0, "C", false, 0, "")
			pdf.CellFormat(wPreco, 5, v.PrecoUnitario.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(wTotal, 5, v.Total().StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}

// truncarNome keeps at most max characters, counting runes so accented
// product names are never cut mid-character.
func truncarNome(nome string, max int) string {
	runes := []rune(nome)
	if len(runes) <= max {
		return nome
	}
	return string(runes[:max-1]) + "…"
}

// RelatorioPDFArquivo renders the report into storagePath and returns the
// absolute file path — used by the async report worker.
func RelatorioPDFArquivo(storagePath, nomeArquivo, titulo string, resumo *dto.ResumoResponse, vendas []model.Venda) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, nomeArquivo)
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()
	if err := RelatorioPDF(f, titulo, resumo, vendas); err != nil {
		return "", fmt.Errorf("pdf: write report: %w", err)
	}
	return filePath, nil
}
