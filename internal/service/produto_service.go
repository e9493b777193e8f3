package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
)

type ProdutoService interface {
	Criar(ctx context.Context, conta domain.AccountContext, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, conta domain.AccountContext, incluirInativos bool) ([]dto.ProdutoResponse, error)
	// AjustarEstoque applies a signed delta and records the ledger movement.
	AjustarEstoque(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error)
	Movimentos(ctx context.Context, conta domain.AccountContext, id uuid.UUID) ([]model.MovimentoEstoque, error)
	EstoqueBaixo(ctx context.Context, conta domain.AccountContext) ([]dto.ProdutoResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
	db   *gorm.DB
}

func NewProdutoService(repo repository.ProdutoRepository, db *gorm.DB) ProdutoService {
	return &produtoService{repo: repo, db: db}
}

func (s *produtoService) Criar(ctx context.Context, conta domain.AccountContext, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if !req.PrecoVenda.IsPositive() {
		return nil, fmt.Errorf("%w: preço de venda deve ser positivo", apperr.ErrValorInvalido)
	}
	if req.EstoqueAtual < 0 || req.EstoqueMinimo < 0 {
		return nil, fmt.Errorf("%w: estoque não pode ser negativo", apperr.ErrValorInvalido)
	}
	produto := model.Produto{
		Nome:          req.Nome,
		SKU:           req.SKU,
		PrecoVenda:    req.PrecoVenda,
		EstoqueAtual:  req.EstoqueAtual,
		EstoqueMinimo: req.EstoqueMinimo,
		Ativo:         true,
	}
	if conta.Escopo == domain.EscopoSolo {
		uid := conta.UsuarioID
		produto.UsuarioID = &uid
	} else {
		produto.EmpresaID = conta.EmpresaID
	}
	if err := s.repo.Create(ctx, &produto); err != nil {
		return nil, err
	}
	return produtoToResponse(&produto), nil
}

func (s *produtoService) Atualizar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.buscarDaConta(ctx, conta, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.SKU != nil {
		produto.SKU = req.SKU
	}
	if req.PrecoVenda != nil {
		if !req.PrecoVenda.IsPositive() {
			return nil, fmt.Errorf("%w: preço de venda deve ser positivo", apperr.ErrValorInvalido)
		}
		produto.PrecoVenda = *req.PrecoVenda
	}
	if req.EstoqueMinimo != nil {
		if *req.EstoqueMinimo < 0 {
			return nil, apperr.ErrValorInvalido
		}
		produto.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.Ativo != nil {
		produto.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, produto); err != nil {
		return nil, err
	}
	return produtoToResponse(produto), nil
}

func (s *produtoService) Listar(ctx context.Context, conta domain.AccountContext, incluirInativos bool) ([]dto.ProdutoResponse, error) {
	empresaID, usuarioID := contaDono(conta)
	produtos, err := s.repo.ListByDono(ctx, empresaID, usuarioID, incluirInativos)
	if err != nil {
		return nil, err
	}
	return produtosToResponse(produtos), nil
}

func (s *produtoService) AjustarEstoque(ctx context.Context, conta domain.AccountContext, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error) {
	if req.Quantidade == 0 {
		return nil, fmt.Errorf("%w: ajuste de estoque não pode ser zero", apperr.ErrValorInvalido)
	}
	produto, err := s.buscarDaConta(ctx, conta, id)
	if err != nil {
		return nil, err
	}
	if produto.EstoqueAtual+req.Quantidade < 0 {
		return nil, fmt.Errorf("%w: %s (disponível %d, ajuste %d)",
			apperr.ErrEstoqueInsuficiente, produto.Nome, produto.EstoqueAtual, req.Quantidade)
	}

	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.repo.AjustarEstoqueTx(tx, id, req.Quantidade); err != nil {
			return err
		}
		return s.repo.CreateMovimentoTx(tx, &model.MovimentoEstoque{
			ProdutoID:       id,
			Tipo:            "ajuste",
			Quantidade:      req.Quantidade,
			EstoqueAnterior: produto.EstoqueAtual,
			EstoqueNovo:     produto.EstoqueAtual + req.Quantidade,
			Motivo:          req.Motivo,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	produto.EstoqueAtual += req.Quantidade
	return produtoToResponse(produto), nil
}

func (s *produtoService) Movimentos(ctx context.Context, conta domain.AccountContext, id uuid.UUID) ([]model.MovimentoEstoque, error) {
	if _, err := s.buscarDaConta(ctx, conta, id); err != nil {
		return nil, err
	}
	return s.repo.ListMovimentos(ctx, id)
}

// buscarDaConta fetches a product and verifies it belongs to the caller's
// catalog; foreign or missing products both surface as ErrNaoEncontrado.
func (s *produtoService) buscarDaConta(ctx context.Context, conta domain.AccountContext, id uuid.UUID) (*model.Produto, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	empresaID, usuarioID := contaDono(conta)
	switch {
	case usuarioID != nil:
		if produto.UsuarioID == nil || *produto.UsuarioID != *usuarioID {
			return nil, apperr.ErrNaoEncontrado
		}
	case empresaID != nil:
		if produto.EmpresaID == nil || *produto.EmpresaID != *empresaID {
			return nil, apperr.ErrNaoEncontrado
		}
	default:
		return nil, apperr.ErrNaoEncontrado
	}
	return produto, nil
}

func (s *produtoService) EstoqueBaixo(ctx context.Context, conta domain.AccountContext) ([]dto.ProdutoResponse, error) {
	empresaID, usuarioID := contaDono(conta)
	produtos, err := s.repo.ListAbaixoDoMinimo(ctx, empresaID, usuarioID)
	if err != nil {
		return nil, err
	}
	return produtosToResponse(produtos), nil
}

// contaDono splits the context into the (empresaID, usuarioID) pair catalog
// queries are keyed by.
func contaDono(conta domain.AccountContext) (*uuid.UUID, *uuid.UUID) {
	if conta.Escopo == domain.EscopoSolo {
		uid := conta.UsuarioID
		return nil, &uid
	}
	return conta.EmpresaID, nil
}

func produtosToResponse(produtos []model.Produto) []dto.ProdutoResponse {
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *produtoToResponse(&produtos[i]))
	}
	return out
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:            p.ID.String(),
		Nome:          p.Nome,
		SKU:           p.SKU,
		PrecoVenda:    p.PrecoVenda,
		EstoqueAtual:  p.EstoqueAtual,
		EstoqueMinimo: p.EstoqueMinimo,
		Ativo:         p.Ativo,
	}
}
