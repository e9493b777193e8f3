package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
)

type VendaService interface {
	Registrar(ctx context.Context, conta domain.AccountContext, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	Confirmar(ctx context.Context, conta domain.AccountContext, id uuid.UUID) (*dto.VendaResponse, error)
	Cancelar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, motivo string) error
	Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	produtoRepo repository.ProdutoRepository
}

func NewVendaService(repo repository.VendaRepository, produtoRepo repository.ProdutoRepository) VendaService {
	return &vendaService{repo: repo, produtoRepo: produtoRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// One transaction line per call: resolve product and price, check stock, and
// — when registering already confirmed — decrement stock and record the
// immutable stock movement inside one transaction.

func (s *vendaService) Registrar(ctx context.Context, conta domain.AccountContext, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, fmt.Errorf("%w: produto_id inválido", apperr.ErrNaoEncontrado)
	}
	if req.Quantidade <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", apperr.ErrValorInvalido)
	}

	produto, err := s.produtoRepo.FindByID(ctx, produtoID)
	if err != nil {
		return nil, fmt.Errorf("%w: produto %s", apperr.ErrNaoEncontrado, req.ProdutoID)
	}
	if !produto.Ativo {
		return nil, fmt.Errorf("%w: produto %s está inativo", apperr.ErrTransicaoInvalida, produto.Nome)
	}

	preco := produto.PrecoVenda
	if req.PrecoUnitario != nil {
		if req.PrecoUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: preço unitário negativo", apperr.ErrValorInvalido)
		}
		preco = *req.PrecoUnitario
	}

	status := model.VendaPendente
	if req.Confirmada {
		if produto.EstoqueAtual < req.Quantidade {
			return nil, fmt.Errorf("%w: %s (disponível %d, pedido %d)",
				apperr.ErrEstoqueInsuficiente, produto.Nome, produto.EstoqueAtual, req.Quantidade)
		}
		status = model.VendaConfirmada
	}

	venda := model.Venda{
		VendedorID:      conta.VendedorID,
		EmpresaID:       conta.EmpresaID,
		UsuarioID:       conta.UsuarioID,
		ProdutoID:       produtoID,
		Quantidade:      req.Quantidade,
		PrecoUnitario:   preco,
		MetodoPagamento: req.MetodoPagamento,
		Status:          status,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venda); err != nil {
			return err
		}
		if status == model.VendaConfirmada {
			return s.baixarEstoque(tx, produto, &venda)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	venda.Produto = produto
	return vendaToResponse(&venda), nil
}

// ── Confirmar ─────────────────────────────────────────────────────────────────

func (s *vendaService) Confirmar(ctx context.Context, conta domain.AccountContext, id uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	if !vendaPertenceAConta(venda, conta) {
		return nil, apperr.ErrNaoEncontrado
	}
	if venda.Status != model.VendaPendente {
		return nil, fmt.Errorf("%w: venda %s já está %s", apperr.ErrTransicaoInvalida, id, venda.Status)
	}

	produto, err := s.produtoRepo.FindByID(ctx, venda.ProdutoID)
	if err != nil {
		return nil, apperr.ErrNaoEncontrado
	}
	if produto.EstoqueAtual < venda.Quantidade {
		return nil, fmt.Errorf("%w: %s", apperr.ErrEstoqueInsuficiente, produto.Nome)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, model.VendaConfirmada); err != nil {
			return err
		}
		return s.baixarEstoque(tx, produto, venda)
	})
	if txErr != nil {
		return nil, txErr
	}

	venda.Status = model.VendaConfirmada
	venda.Produto = produto
	return vendaToResponse(venda), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────
// The only mutation allowed on a confirmed sale. Restores stock with an
// inverse ledger entry; settlement queries exclude the row from then on.

func (s *vendaService) Cancelar(ctx context.Context, conta domain.AccountContext, id uuid.UUID, motivo string) error {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNaoEncontrado
		}
		return err
	}
	if !vendaPertenceAConta(venda, conta) {
		return apperr.ErrNaoEncontrado
	}
	if venda.Status == model.VendaCancelada {
		return fmt.Errorf("%w: venda já cancelada", apperr.ErrTransicaoInvalida)
	}
	eraConfirmada := venda.Status == model.VendaConfirmada

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if eraConfirmada {
			produto, err := s.produtoRepo.FindByID(ctx, venda.ProdutoID)
			if err != nil {
				return err
			}
			if err := s.produtoRepo.AjustarEstoqueTx(tx, venda.ProdutoID, venda.Quantidade); err != nil {
				return err
			}
			ref := venda.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       venda.ProdutoID,
				Tipo:            "estorno_cancelamento",
				Quantidade:      venda.Quantidade,
				EstoqueAnterior: produto.EstoqueAtual,
				EstoqueNovo:     produto.EstoqueAtual + venda.Quantidade,
				Motivo:          fmt.Sprintf("Cancelamento de venda — %s", motivo),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, model.VendaCancelada)
	})
}

// vendaPertenceAConta guards by-id mutations: a caller only ever sees rows of
// its own scope, so a mismatch is indistinguishable from a missing row.
func vendaPertenceAConta(v *model.Venda, conta domain.AccountContext) bool {
	switch conta.Escopo {
	case domain.EscopoVendedor:
		return conta.VendedorID != nil && v.VendedorID != nil && *v.VendedorID == *conta.VendedorID
	case domain.EscopoEmpresa:
		return conta.EmpresaID != nil && v.EmpresaID != nil && *v.EmpresaID == *conta.EmpresaID
	default:
		return v.UsuarioID == conta.UsuarioID
	}
}

func (s *vendaService) baixarEstoque(tx *gorm.DB, produto *model.Produto, venda *model.Venda) error {
	if err := s.produtoRepo.AjustarEstoqueTx(tx, produto.ID, -venda.Quantidade); err != nil {
		return err
	}
	ref := venda.ID
	mov := &model.MovimentoEstoque{
		ProdutoID:       produto.ID,
		Tipo:            "venda",
		Quantidade:      -venda.Quantidade,
		EstoqueAnterior: produto.EstoqueAtual,
		EstoqueNovo:     produto.EstoqueAtual - venda.Quantidade,
		Motivo:          fmt.Sprintf("Venda de %d × %s", venda.Quantidade, produto.Nome),
		ReferenciaID:    &ref,
	}
	return s.produtoRepo.CreateMovimentoTx(tx, mov)
}

// Listar returns a paginated list of sales. Default filter: today.
func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.DataDe.IsZero() {
		hoje := time.Now()
		filter.DataDe = time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, hoje.Location())
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		items = append(items, *vendaToResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	nome := ""
	if v.Produto != nil {
		nome = v.Produto.Nome
	}
	return &dto.VendaResponse{
		ID:              v.ID.String(),
		Produto:         nome,
		ProdutoID:       v.ProdutoID.String(),
		Quantidade:      v.Quantidade,
		PrecoUnitario:   v.PrecoUnitario,
		Total:           v.Total(),
		MetodoPagamento: v.MetodoPagamento,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
