package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/model"
)

type VendedorRepository interface {
	Create(ctx context.Context, v *model.Vendedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendedor, error)
	Update(ctx context.Context, v *model.Vendedor) error
	ListByEmpresa(ctx context.Context, empresaID uuid.UUID, incluirInativos bool) ([]model.Vendedor, error)
}

type vendedorRepo struct{ db *gorm.DB }

func NewVendedorRepository(db *gorm.DB) VendedorRepository { return &vendedorRepo{db: db} }

func (r *vendedorRepo) Create(ctx context.Context, v *model.Vendedor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendedor, error) {
	var v model.Vendedor
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendedorRepo) Update(ctx context.Context, v *model.Vendedor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendedorRepo) ListByEmpresa(ctx context.Context, empresaID uuid.UUID, incluirInativos bool) ([]model.Vendedor, error) {
	var vendedores []model.Vendedor
	q := r.db.WithContext(ctx).Where("empresa_id = ?", empresaID)
	if !incluirInativos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Order("nome ASC").Find(&vendedores).Error
	return vendedores, err
}
