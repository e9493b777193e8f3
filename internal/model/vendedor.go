package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vendedor is a seller attached to an empresa.
// TaxaComissao is a fraction in [0,1] applied over confirmed sales.
type Vendedor struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmpresaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nome         string          `gorm:"not null"`
	TaxaComissao decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0"`
	Ativo        bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *Vendedor) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
