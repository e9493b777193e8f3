package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kit is a bundle of product quantities assigned to a vendedor for a given
// day — an inventory allocation, not a computed aggregate.
// Status: "aberto" | "devolvido"
type Kit struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpresaID  uuid.UUID `gorm:"type:uuid;not null;index"`
	VendedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Data       time.Time `gorm:"not null;index"`
	Status     string    `gorm:"type:varchar(20);not null;default:'aberto'"`
	Itens      []KitItem `gorm:"foreignKey:KitID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (k *Kit) BeforeCreate(_ *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

type KitItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	KitID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProdutoID  uuid.UUID `gorm:"type:uuid;not null"`
	Produto    *Produto  `gorm:"foreignKey:ProdutoID"`
	Quantidade int       `gorm:"not null"`
}

func (i *KitItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
