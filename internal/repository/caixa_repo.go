package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendr/internal/model"
)

type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	// FindSessaoAberta returns (nil, nil) when no open session exists.
	FindSessaoAberta(ctx context.Context, donoRef uuid.UUID, escopo string) (*model.SessaoCaixa, error)
	FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error
	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	ListMovimentos(ctx context.Context, sessaoID uuid.UUID) ([]model.MovimentoCaixa, error)
	// SomaMovimentos returns the signed sum of the manual-movement ledger
	// (saídas already negative).
	SomaMovimentos(ctx context.Context, sessaoID uuid.UUID) (decimal.Decimal, error)
	ListSessoes(ctx context.Context, donoRef uuid.UUID, escopo string, page, limit int) ([]model.SessaoCaixa, int64, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessaoAberta(ctx context.Context, donoRef uuid.UUID, escopo string) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Where("dono_ref = ? AND escopo = ? AND status = 'aberta'", donoRef, escopo).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *caixaRepo) FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentos").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListMovimentos(ctx context.Context, sessaoID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).Where("sessao_caixa_id = ?", sessaoID).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SomaMovimentos(ctx context.Context, sessaoID uuid.UUID) (decimal.Decimal, error) {
	var soma decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.MovimentoCaixa{}).
		Where("sessao_caixa_id = ?", sessaoID).
		Select("SUM(valor)").Scan(&soma).Error
	if err != nil || !soma.Valid {
		return decimal.Zero, err
	}
	return soma.Decimal, nil
}

func (r *caixaRepo) ListSessoes(ctx context.Context, donoRef uuid.UUID, escopo string, page, limit int) ([]model.SessaoCaixa, int64, error) {
	var sessoes []model.SessaoCaixa
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SessaoCaixa{}).
		Where("dono_ref = ? AND escopo = ?", donoRef, escopo)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("aberta_em DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessoes).Error
	return sessoes, total, err
}
