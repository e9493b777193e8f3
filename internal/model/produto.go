package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Produto is a catalog item. For solo accounts EmpresaID is nil and the
// catalog is keyed by UsuarioID instead.
type Produto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmpresaID   *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioID   *uuid.UUID      `gorm:"type:uuid;index"`
	Nome        string          `gorm:"not null"`
	SKU         *string         `gorm:"type:varchar(40);index"`
	PrecoVenda  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EstoqueAtual int            `gorm:"not null;default:0"`
	EstoqueMinimo int           `gorm:"not null;default:0"`
	Ativo       bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Produto) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MovimentoEstoque is an immutable event in the stock ledger.
// Tipo: "venda" | "ajuste" | "estorno_cancelamento" | "kit"
// Movements are NEVER modified or deleted — corrections create inverse entries.
type MovimentoEstoque struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProdutoID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo            string    `gorm:"type:varchar(30);not null"`
	Quantidade      int       `gorm:"not null"`
	EstoqueAnterior int       `gorm:"not null"`
	EstoqueNovo     int       `gorm:"not null"`
	Motivo          string    `gorm:"not null"`
	// ReferenciaID links to the originating Venda or Kit
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (m *MovimentoEstoque) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
