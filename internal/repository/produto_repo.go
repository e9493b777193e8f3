package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/model"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	// AjustarEstoqueTx applies a signed delta inside the caller's transaction.
	AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	ListMovimentos(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error)
	ListByDono(ctx context.Context, empresaID, usuarioID *uuid.UUID, incluirInativos bool) ([]model.Produto, error)
	ListAbaixoDoMinimo(ctx context.Context, empresaID, usuarioID *uuid.UUID) ([]model.Produto, error)
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		UpdateColumn("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *produtoRepo) ListMovimentos(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func donoScope(q *gorm.DB, empresaID, usuarioID *uuid.UUID) *gorm.DB {
	if empresaID != nil {
		return q.Where("empresa_id = ?", *empresaID)
	}
	if usuarioID != nil {
		return q.Where("usuario_id = ?", *usuarioID)
	}
	return q
}

func (r *produtoRepo) ListByDono(ctx context.Context, empresaID, usuarioID *uuid.UUID, incluirInativos bool) ([]model.Produto, error) {
	var produtos []model.Produto
	q := donoScope(r.db.WithContext(ctx).Model(&model.Produto{}), empresaID, usuarioID)
	if !incluirInativos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListAbaixoDoMinimo(ctx context.Context, empresaID, usuarioID *uuid.UUID) ([]model.Produto, error) {
	var produtos []model.Produto
	q := donoScope(r.db.WithContext(ctx).Model(&model.Produto{}), empresaID, usuarioID)
	err := q.Where("ativo = ? AND estoque_atual < estoque_minimo", true).
		Order("estoque_atual ASC").Find(&produtos).Error
	return produtos, err
}
