package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/export"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/settlement"
)

// RelatorioService builds period summaries and feeds the CSV/PDF exporters.
type RelatorioService interface {
	Resumo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.ResumoResponse, error)
	ExportarVendasCSV(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error
	ExportarResumoCSV(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error
	ExportarPDF(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error
	ExportarUsuariosCSV(ctx context.Context, empresaID uuid.UUID, w io.Writer) error
}

type relatorioService struct {
	vendaRepo    repository.VendaRepository
	despesaRepo  repository.DespesaRepository
	vendedorRepo repository.VendedorRepository
	usuarioRepo  repository.UsuarioRepository
	empresaRepo  repository.EmpresaRepository
}

func NewRelatorioService(
	vendaRepo repository.VendaRepository,
	despesaRepo repository.DespesaRepository,
	vendedorRepo repository.VendedorRepository,
	usuarioRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
) RelatorioService {
	return &relatorioService{
		vendaRepo:    vendaRepo,
		despesaRepo:  despesaRepo,
		vendedorRepo: vendedorRepo,
		usuarioRepo:  usuarioRepo,
		empresaRepo:  empresaRepo,
	}
}

func (s *relatorioService) Resumo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.ResumoResponse, error) {
	vendas, err := s.vendaRepo.Query(ctx, vendaFilterParaConta(conta, de, ate))
	if err != nil {
		return nil, err
	}
	totais, err := settlement.CalcularTotais(vendas)
	if err != nil {
		return nil, err
	}

	comissao := decimal.Zero
	if conta.Escopo == domain.EscopoVendedor && conta.VendedorID != nil {
		vendedor, err := s.vendedorRepo.FindByID(ctx, *conta.VendedorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.ErrNaoEncontrado
			}
			return nil, err
		}
		comissao, err = settlement.CalcularComissao(totais.TotalVendido, vendedor.TaxaComissao)
		if err != nil {
			return nil, err
		}
	}

	totalDespesas := decimal.Zero
	if conta.Escopo != domain.EscopoVendedor {
		despesas, err := s.despesaRepo.Query(ctx, despesaFilter(conta, de, ate))
		if err != nil {
			return nil, err
		}
		for i := range despesas {
			totalDespesas = totalDespesas.Add(despesas[i].Valor)
		}
	}

	return &dto.ResumoResponse{
		Periodo:        fmt.Sprintf("%s – %s", de.Format("02/01/2006"), ate.Format("02/01/2006")),
		TotalVendido:   totais.TotalVendido,
		ComissaoDevida: comissao,
		PorMetodo:      totais.PorMetodo,
		Quantidade:     totais.Quantidade,
		TicketMedio:    settlement.TicketMedio(totais.TotalVendido, totais.Quantidade),
		TotalDespesas:  totalDespesas,
		TopProduto:     topProduto(vendas),
	}, nil
}

func (s *relatorioService) ExportarVendasCSV(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error {
	vendas, err := s.vendaRepo.Query(ctx, vendaFilterParaConta(conta, de, ate))
	if err != nil {
		return err
	}
	return export.VendasCSV(w, vendas)
}

func (s *relatorioService) ExportarResumoCSV(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error {
	resumo, err := s.Resumo(ctx, conta, de, ate)
	if err != nil {
		return err
	}
	return export.ResumoCSV(w, resumo)
}

func (s *relatorioService) ExportarPDF(ctx context.Context, conta domain.AccountContext, de, ate time.Time, w io.Writer) error {
	resumo, err := s.Resumo(ctx, conta, de, ate)
	if err != nil {
		return err
	}
	vendas, err := s.vendaRepo.Query(ctx, vendaFilterParaConta(conta, de, ate))
	if err != nil {
		return err
	}
	titulo := fmt.Sprintf("Relatório de Vendas — %s", resumo.Periodo)
	return export.RelatorioPDF(w, titulo, resumo, vendas)
}

func (s *relatorioService) ExportarUsuariosCSV(ctx context.Context, empresaID uuid.UUID, w io.Writer) error {
	empresa, err := s.empresaRepo.FindByID(ctx, empresaID)
	if err != nil {
		return err
	}
	usuarios, err := s.usuarioRepo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	return export.UsuariosCSV(w, usuarios, empresa.Nome)
}

// vendaFilterParaConta scopes a sales query to the caller's account variant.
func vendaFilterParaConta(conta domain.AccountContext, de, ate time.Time) dto.VendaFilter {
	f := dto.VendaFilter{DataDe: de, DataAte: ate}
	switch conta.Escopo {
	case domain.EscopoVendedor:
		f.VendedorID = conta.VendedorID
	case domain.EscopoEmpresa:
		f.EmpresaID = conta.EmpresaID
	default:
		uid := conta.UsuarioID
		f.UsuarioID = &uid
	}
	return f
}

// topProduto is the product with the highest confirmed revenue in the batch.
func topProduto(vendas []model.Venda) string {
	type acc struct {
		nome  string
		total decimal.Decimal
	}
	porProduto := map[uuid.UUID]*acc{}
	for i := range vendas {
		v := &vendas[i]
		if v.Status != model.VendaConfirmada || v.Produto == nil {
			continue
		}
		a, ok := porProduto[v.ProdutoID]
		if !ok {
			a = &acc{nome: v.Produto.Nome, total: decimal.Zero}
			porProduto[v.ProdutoID] = a
		}
		a.total = a.total.Add(v.Total())
	}
	top := ""
	max := decimal.Zero
	for _, a := range porProduto {
		if a.total.GreaterThan(max) || (a.total.Equal(max) && top != "" && a.nome < top) {
			top = a.nome
			max = a.total
		}
	}
	return top
}
