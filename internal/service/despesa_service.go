package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
)

type DespesaService interface {
	Criar(ctx context.Context, conta domain.AccountContext, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error)
	Atualizar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.DespesaResponse, error)
	Remover(ctx context.Context, conta domain.AccountContext, id uuid.UUID) error
	Listar(ctx context.Context, conta domain.AccountContext, de, ate time.Time) ([]dto.DespesaResponse, error)
	TotalDoPeriodo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.TotalDespesasResponse, error)
}

type despesaService struct {
	repo repository.DespesaRepository
}

func NewDespesaService(repo repository.DespesaRepository) DespesaService {
	return &despesaService{repo: repo}
}

func (s *despesaService) Criar(ctx context.Context, conta domain.AccountContext, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, apperr.ErrValorInvalido
	}
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, apperr.ErrValorInvalido
	}

	despesa := model.Despesa{
		Descricao: req.Descricao,
		Valor:     req.Valor,
		Categoria: req.Categoria,
		Data:      data,
		Paga:      req.Paga,
	}
	if conta.Escopo == domain.EscopoSolo {
		uid := conta.UsuarioID
		despesa.UsuarioID = &uid
	} else {
		despesa.EmpresaID = conta.EmpresaID
	}

	if err := s.repo.Create(ctx, &despesa); err != nil {
		return nil, err
	}
	return despesaToResponse(&despesa), nil
}

func (s *despesaService) Atualizar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.DespesaResponse, error) {
	despesa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	if !despesaPertenceAConta(despesa, conta) {
		return nil, apperr.ErrNaoEncontrado
	}
	if req.Descricao != nil {
		despesa.Descricao = *req.Descricao
	}
	if req.Valor != nil {
		if !req.Valor.IsPositive() {
			return nil, apperr.ErrValorInvalido
		}
		despesa.Valor = *req.Valor
	}
	if req.Categoria != nil {
		despesa.Categoria = *req.Categoria
	}
	if req.Paga != nil {
		despesa.Paga = *req.Paga
	}
	if err := s.repo.Update(ctx, despesa); err != nil {
		return nil, err
	}
	return despesaToResponse(despesa), nil
}

func (s *despesaService) Remover(ctx context.Context, conta domain.AccountContext, id uuid.UUID) error {
	despesa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNaoEncontrado
		}
		return err
	}
	if !despesaPertenceAConta(despesa, conta) {
		return apperr.ErrNaoEncontrado
	}
	return s.repo.Delete(ctx, id)
}

// despesaPertenceAConta guards by-id mutations: expenses belong to the
// empresa for owner accounts and to the usuario for solo accounts.
func despesaPertenceAConta(d *model.Despesa, conta domain.AccountContext) bool {
	if conta.Escopo == domain.EscopoSolo {
		return d.UsuarioID != nil && *d.UsuarioID == conta.UsuarioID
	}
	return conta.EmpresaID != nil && d.EmpresaID != nil && *d.EmpresaID == *conta.EmpresaID
}

func (s *despesaService) Listar(ctx context.Context, conta domain.AccountContext, de, ate time.Time) ([]dto.DespesaResponse, error) {
	despesas, err := s.repo.Query(ctx, despesaFilter(conta, de, ate))
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespesaResponse, 0, len(despesas))
	for i := range despesas {
		out = append(out, *despesaToResponse(&despesas[i]))
	}
	return out, nil
}

func (s *despesaService) TotalDoPeriodo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.TotalDespesasResponse, error) {
	despesas, err := s.repo.Query(ctx, despesaFilter(conta, de, ate))
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	porCategoria := map[string]decimal.Decimal{}
	for i := range despesas {
		total = total.Add(despesas[i].Valor)
		porCategoria[despesas[i].Categoria] = porCategoria[despesas[i].Categoria].Add(despesas[i].Valor)
	}
	return &dto.TotalDespesasResponse{Total: total, PorCategoria: porCategoria}, nil
}

func despesaFilter(conta domain.AccountContext, de, ate time.Time) dto.DespesaFilter {
	f := dto.DespesaFilter{DataDe: de, DataAte: ate}
	if conta.Escopo == domain.EscopoSolo {
		uid := conta.UsuarioID
		f.UsuarioID = &uid
	} else {
		f.EmpresaID = conta.EmpresaID
	}
	return f
}

func despesaToResponse(d *model.Despesa) *dto.DespesaResponse {
	return &dto.DespesaResponse{
		ID:        d.ID.String(),
		Descricao: d.Descricao,
		Valor:     d.Valor,
		Categoria: d.Categoria,
		Data:      d.Data.Format("2006-01-02"),
		Paga:      d.Paga,
	}
}
