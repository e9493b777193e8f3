package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/model"
)

type EmpresaRepository interface {
	Create(ctx context.Context, e *model.Empresa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error)
	Update(ctx context.Context, e *model.Empresa) error
	// ListComRelatorioDiario returns active empresas that opted into the
	// automatic daily summary email.
	ListComRelatorioDiario(ctx context.Context) ([]model.Empresa, error)
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Create(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empresaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *empresaRepo) Update(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empresaRepo) ListComRelatorioDiario(ctx context.Context) ([]model.Empresa, error) {
	var empresas []model.Empresa
	err := r.db.WithContext(ctx).
		Where("ativa = ? AND email_relatorio IS NOT NULL", true).
		Find(&empresas).Error
	return empresas, err
}
