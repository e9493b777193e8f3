package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted on a sale. Only MetodoDinheiro affects the
// physical cash balance of a caixa session.
const (
	MetodoPix      = "pix"
	MetodoCartao   = "cartao"
	MetodoDinheiro = "dinheiro"
)

// Sale lifecycle. Confirmed rows are immutable except for the transition to
// cancelada; only confirmed rows count toward totals.
const (
	VendaPendente   = "pendente"
	VendaConfirmada = "confirmada"
	VendaCancelada  = "cancelada"
)

// Venda is a single transaction line: one product, one payment method.
type Venda struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// VendedorID/EmpresaID are nil for solo sales; UsuarioID always records
	// who registered the sale.
	VendedorID      *uuid.UUID      `gorm:"type:uuid;index"`
	EmpresaID       *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Produto         *Produto        `gorm:"foreignKey:ProdutoID"`
	Quantidade      int             `gorm:"not null"`
	PrecoUnitario   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPagamento string          `gorm:"type:varchar(20);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pendente';index"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time
}

func (v *Venda) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Total is Quantidade × PrecoUnitario.
func (v *Venda) Total() decimal.Decimal {
	return v.PrecoUnitario.Mul(decimal.NewFromInt(int64(v.Quantidade)))
}
