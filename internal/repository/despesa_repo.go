package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/dto"
	"vendr/internal/model"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.Despesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error)
	Update(ctx context.Context, d *model.Despesa) error
	Delete(ctx context.Context, id uuid.UUID) error
	Query(ctx context.Context, filter dto.DespesaFilter) ([]model.Despesa, error)
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error) {
	var d model.Despesa
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *despesaRepo) Update(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *despesaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Despesa{}, "id = ?", id).Error
}

func (r *despesaRepo) Query(ctx context.Context, filter dto.DespesaFilter) ([]model.Despesa, error) {
	var despesas []model.Despesa
	q := r.db.WithContext(ctx).Model(&model.Despesa{})
	if filter.EmpresaID != nil {
		q = q.Where("empresa_id = ?", *filter.EmpresaID)
	}
	if filter.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *filter.UsuarioID)
	}
	if !filter.DataDe.IsZero() {
		q = q.Where("data >= ?", filter.DataDe)
	}
	if !filter.DataAte.IsZero() {
		q = q.Where("data < ?", filter.DataAte)
	}
	err := q.Order("data DESC").Find(&despesas).Error
	return despesas, err
}
