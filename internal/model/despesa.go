package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Despesa is a company (or solo) expense, used only in aggregate totals.
type Despesa struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmpresaID *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	Descricao string     `gorm:"not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria string     `gorm:"type:varchar(40);not null"`
	Data      time.Time  `gorm:"not null;index"`
	Paga      bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Despesa) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
