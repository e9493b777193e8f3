package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
)

type KitService interface {
	// Montar reserves stock for every item and opens the kit in one transaction.
	Montar(ctx context.Context, empresaID uuid.UUID, req dto.CriarKitRequest) (*dto.KitResponse, error)
	// Devolver returns all items to stock and closes the kit.
	Devolver(ctx context.Context, empresaID, id uuid.UUID) (*dto.KitResponse, error)
	ListarPorVendedor(ctx context.Context, vendedorID uuid.UUID, dia time.Time) ([]dto.KitResponse, error)
}

type kitService struct {
	repo        repository.KitRepository
	produtoRepo repository.ProdutoRepository
	db          *gorm.DB
}

func NewKitService(repo repository.KitRepository, produtoRepo repository.ProdutoRepository, db *gorm.DB) KitService {
	return &kitService{repo: repo, produtoRepo: produtoRepo, db: db}
}

func (s *kitService) Montar(ctx context.Context, empresaID uuid.UUID, req dto.CriarKitRequest) (*dto.KitResponse, error) {
	vendedorID, err := uuid.Parse(req.VendedorID)
	if err != nil {
		return nil, apperr.ErrNaoEncontrado
	}
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, apperr.ErrValorInvalido
	}

	kit := model.Kit{
		EmpresaID:  empresaID,
		VendedorID: vendedorID,
		Data:       data,
		Status:     "aberto",
	}
	produtos := make(map[uuid.UUID]*model.Produto, len(req.Itens))
	for _, item := range req.Itens {
		produtoID, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, apperr.ErrNaoEncontrado
		}
		produto, err := s.produtoRepo.FindByID(ctx, produtoID)
		if err != nil {
			return nil, fmt.Errorf("%w: produto %s", apperr.ErrNaoEncontrado, item.ProdutoID)
		}
		if produto.EstoqueAtual < item.Quantidade {
			return nil, fmt.Errorf("%w: %s (disponível %d, pedido %d)",
				apperr.ErrEstoqueInsuficiente, produto.Nome, produto.EstoqueAtual, item.Quantidade)
		}
		produtos[produtoID] = produto
		kit.Itens = append(kit.Itens, model.KitItem{ProdutoID: produtoID, Quantidade: item.Quantidade})
	}

	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &kit); err != nil {
			return err
		}
		for i := range kit.Itens {
			item := kit.Itens[i]
			produto := produtos[item.ProdutoID]
			if err := s.produtoRepo.AjustarEstoqueTx(tx, item.ProdutoID, -item.Quantidade); err != nil {
				return err
			}
			ref := kit.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       item.ProdutoID,
				Tipo:            "kit",
				Quantidade:      -item.Quantidade,
				EstoqueAnterior: produto.EstoqueAtual,
				EstoqueNovo:     produto.EstoqueAtual - item.Quantidade,
				Motivo:          fmt.Sprintf("Montagem de kit %s", kit.Data.Format("02/01/2006")),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	for i := range kit.Itens {
		kit.Itens[i].Produto = produtos[kit.Itens[i].ProdutoID]
	}
	return kitToResponse(&kit), nil
}

func (s *kitService) Devolver(ctx context.Context, empresaID, id uuid.UUID) (*dto.KitResponse, error) {
	kit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	if kit.EmpresaID != empresaID {
		return nil, apperr.ErrNaoEncontrado
	}
	if kit.Status != "aberto" {
		return nil, fmt.Errorf("%w: kit já devolvido", apperr.ErrTransicaoInvalida)
	}

	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		for i := range kit.Itens {
			item := kit.Itens[i]
			produto, err := s.produtoRepo.FindByID(ctx, item.ProdutoID)
			if err != nil {
				return err
			}
			if err := s.produtoRepo.AjustarEstoqueTx(tx, item.ProdutoID, item.Quantidade); err != nil {
				return err
			}
			ref := kit.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       item.ProdutoID,
				Tipo:            "kit",
				Quantidade:      item.Quantidade,
				EstoqueAnterior: produto.EstoqueAtual,
				EstoqueNovo:     produto.EstoqueAtual + item.Quantidade,
				Motivo:          fmt.Sprintf("Devolução de kit %s", kit.Data.Format("02/01/2006")),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, "devolvido")
	})
	if txErr != nil {
		return nil, txErr
	}

	kit.Status = "devolvido"
	return kitToResponse(kit), nil
}

func (s *kitService) ListarPorVendedor(ctx context.Context, vendedorID uuid.UUID, dia time.Time) ([]dto.KitResponse, error) {
	kits, err := s.repo.ListByVendedor(ctx, vendedorID, dia)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KitResponse, 0, len(kits))
	for i := range kits {
		out = append(out, *kitToResponse(&kits[i]))
	}
	return out, nil
}

func kitToResponse(k *model.Kit) *dto.KitResponse {
	itens := make([]dto.KitItemResponse, 0, len(k.Itens))
	for _, item := range k.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		itens = append(itens, dto.KitItemResponse{
			ProdutoID:  item.ProdutoID.String(),
			Produto:    nome,
			Quantidade: item.Quantidade,
		})
	}
	return &dto.KitResponse{
		ID:         k.ID.String(),
		VendedorID: k.VendedorID.String(),
		Data:       k.Data.Format("2006-01-02"),
		Status:     k.Status,
		Itens:      itens,
	}
}
