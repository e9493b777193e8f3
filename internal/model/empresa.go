package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Empresa is a tenant: a company that owns sellers, products, and expenses.
type Empresa struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome string    `gorm:"not null"`
	CNPJ *string   `gorm:"type:varchar(18);uniqueIndex"`
	// EmailRelatorio, when set, receives the automatic daily summary report.
	EmailRelatorio *string
	Ativa          bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e *Empresa) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
