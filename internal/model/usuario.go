package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Usuario is an authenticated account.
// Role: "dono" | "vendedor" | "solo"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	// EmpresaID is set for dono and vendedor accounts; nil for solo.
	EmpresaID *uuid.UUID `gorm:"type:uuid;index"`
	// VendedorID links a vendedor account to its seller record.
	VendedorID *uuid.UUID `gorm:"type:uuid"`
	Ativo      bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *Usuario) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
