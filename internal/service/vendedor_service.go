package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/settlement"
)

var decimalOne = decimal.NewFromInt(1)

type VendedorService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarVendedorRequest) (*dto.VendedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarVendedorRequest) (*dto.VendedorResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, incluirInativos bool) ([]dto.VendedorResponse, error)
	// Comissao computes the seller's settlement statement for [de, ate).
	Comissao(ctx context.Context, vendedorID uuid.UUID, de, ate time.Time) (*dto.ComissaoResponse, error)
}

type vendedorService struct {
	repo      repository.VendedorRepository
	vendaRepo repository.VendaRepository
}

func NewVendedorService(repo repository.VendedorRepository, vendaRepo repository.VendaRepository) VendedorService {
	return &vendedorService{repo: repo, vendaRepo: vendaRepo}
}

func (s *vendedorService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarVendedorRequest) (*dto.VendedorResponse, error) {
	if req.TaxaComissao.IsNegative() || req.TaxaComissao.GreaterThan(decimalOne) {
		return nil, fmt.Errorf("%w: taxa de comissão fora de [0, 1]", apperr.ErrValorInvalido)
	}
	vendedor := model.Vendedor{
		EmpresaID:    empresaID,
		Nome:         req.Nome,
		TaxaComissao: req.TaxaComissao,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, &vendedor); err != nil {
		return nil, err
	}
	return vendedorToResponse(&vendedor), nil
}

func (s *vendedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarVendedorRequest) (*dto.VendedorResponse, error) {
	vendedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	if req.Nome != nil {
		vendedor.Nome = *req.Nome
	}
	if req.TaxaComissao != nil {
		if req.TaxaComissao.IsNegative() || req.TaxaComissao.GreaterThan(decimalOne) {
			return nil, fmt.Errorf("%w: taxa de comissão fora de [0, 1]", apperr.ErrValorInvalido)
		}
		vendedor.TaxaComissao = *req.TaxaComissao
	}
	if req.Ativo != nil {
		vendedor.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, vendedor); err != nil {
		return nil, err
	}
	return vendedorToResponse(vendedor), nil
}

func (s *vendedorService) Listar(ctx context.Context, empresaID uuid.UUID, incluirInativos bool) ([]dto.VendedorResponse, error) {
	vendedores, err := s.repo.ListByEmpresa(ctx, empresaID, incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendedorResponse, 0, len(vendedores))
	for i := range vendedores {
		out = append(out, *vendedorToResponse(&vendedores[i]))
	}
	return out, nil
}

func (s *vendedorService) Comissao(ctx context.Context, vendedorID uuid.UUID, de, ate time.Time) (*dto.ComissaoResponse, error) {
	vendedor, err := s.repo.FindByID(ctx, vendedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}

	vendas, err := s.vendaRepo.Query(ctx, dto.VendaFilter{
		VendedorID: &vendedorID,
		DataDe:     de,
		DataAte:    ate,
	})
	if err != nil {
		return nil, err
	}

	totais, err := settlement.CalcularTotais(vendas)
	if err != nil {
		return nil, err
	}
	comissao, err := settlement.CalcularComissao(totais.TotalVendido, vendedor.TaxaComissao)
	if err != nil {
		return nil, err
	}

	return &dto.ComissaoResponse{
		VendedorID:     vendedorID.String(),
		Periodo:        fmt.Sprintf("%s – %s", de.Format("02/01/2006"), ate.Format("02/01/2006")),
		TotalVendido:   totais.TotalVendido,
		TaxaComissao:   vendedor.TaxaComissao,
		ComissaoDevida: comissao,
		PorMetodo:      totais.PorMetodo,
		Quantidade:     totais.Quantidade,
		TicketMedio:    settlement.TicketMedio(totais.TotalVendido, totais.Quantidade),
	}, nil
}

func vendedorToResponse(v *model.Vendedor) *dto.VendedorResponse {
	return &dto.VendedorResponse{
		ID:           v.ID.String(),
		Nome:         v.Nome,
		TaxaComissao: v.TaxaComissao,
		Ativo:        v.Ativo,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
}
