package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendr/internal/model"
)

type KitRepository interface {
	// CreateTx/UpdateStatusTx run inside the caller's transaction so the kit
	// row commits or rolls back together with its stock movements.
	CreateTx(tx *gorm.DB, k *model.Kit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Kit, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	ListByVendedor(ctx context.Context, vendedorID uuid.UUID, dia time.Time) ([]model.Kit, error)
}

type kitRepo struct{ db *gorm.DB }

func NewKitRepository(db *gorm.DB) KitRepository { return &kitRepo{db: db} }

func (r *kitRepo) CreateTx(tx *gorm.DB, k *model.Kit) error {
	return tx.Create(k).Error
}

func (r *kitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Kit, error) {
	var k model.Kit
	err := r.db.WithContext(ctx).Preload("Itens.Produto").First(&k, "id = ?", id).Error
	return &k, err
}

func (r *kitRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Kit{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *kitRepo) ListByVendedor(ctx context.Context, vendedorID uuid.UUID, dia time.Time) ([]model.Kit, error) {
	var kits []model.Kit
	q := r.db.WithContext(ctx).Where("vendedor_id = ?", vendedorID)
	if !dia.IsZero() {
		inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
		q = q.Where("data >= ? AND data < ?", inicio, inicio.AddDate(0, 0, 1))
	}
	err := q.Preload("Itens.Produto").Order("data DESC").Find(&kits).Error
	return kits, err
}
