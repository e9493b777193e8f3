package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/dto"
	"vendr/internal/model"
)

type VendaRepository interface {
	Create(ctx context.Context, v *model.Venda) error
	// CreateTx/UpdateStatusTx run inside the caller's transaction so the
	// sale row commits or rolls back together with its stock writes.
	CreateTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	// Query returns every row matching the filter — the settlement path;
	// List is the paginated UI listing over the same filter.
	Query(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, v *model.Venda) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Produto").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Venda{}).Where("id = ?", id).Update("status", status).Error
}

func (r *vendaRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Venda{}).Where("id = ?", id).Update("status", status).Error
}

func applyVendaFilter(q *gorm.DB, f dto.VendaFilter) *gorm.DB {
	if f.VendedorID != nil {
		q = q.Where("vendedor_id = ?", *f.VendedorID)
	}
	if f.EmpresaID != nil {
		q = q.Where("empresa_id = ?", *f.EmpresaID)
	}
	if f.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *f.UsuarioID)
	}
	if !f.DataDe.IsZero() {
		q = q.Where("created_at >= ?", f.DataDe)
	}
	if !f.DataAte.IsZero() {
		q = q.Where("created_at < ?", f.DataAte)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *vendaRepo) Query(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error) {
	var vendas []model.Venda
	q := applyVendaFilter(r.db.WithContext(ctx).Model(&model.Venda{}), filter)
	err := q.Preload("Produto").Order("created_at ASC").Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := applyVendaFilter(r.db.WithContext(ctx).Model(&model.Venda{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Produto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error
	return vendas, total, err
}
