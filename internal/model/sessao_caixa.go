package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessaoCaixa represents the lifecycle of a cash-handling session.
// Status: "aberta" | "fechada". At most one "aberta" row may exist per
// (dono_ref, escopo) — enforced by a partial unique index in Postgres.
type SessaoCaixa struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// DonoRef is the owner reference: vendedor id for seller sessions,
	// usuario id for empresa/solo sessions.
	DonoRef      uuid.UUID       `gorm:"type:uuid;not null;index:idx_sessoes_dono"`
	Escopo       string          `gorm:"type:varchar(20);not null;index:idx_sessoes_dono"`
	EmpresaID    *uuid.UUID      `gorm:"type:uuid;index"`
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoTeorico is computed on close: SaldoInicial + entradas em dinheiro − saídas.
	SaldoTeorico *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoContado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Quebra = SaldoContado − SaldoTeorico (positive = sobra, negative = falta).
	Quebra    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status    string           `gorm:"type:varchar(20);not null;default:'aberta'"`
	AbertaEm  time.Time
	FechadaEm *time.Time

	Movimentos []MovimentoCaixa `gorm:"foreignKey:SessaoCaixaID"`
}

func (s *SessaoCaixa) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AbertaEm.IsZero() {
		s.AbertaEm = time.Now()
	}
	return nil
}

// MovimentoCaixa is an immutable event in the cash-session ledger.
// Tipo: "entrada_manual" | "saida_manual" | "ajuste"
// Sales are not mirrored here — the close computation queries vendas by
// owner and session window. Saídas are stored with negative Valor; movements
// are never modified or deleted, corrections create inverse entries.
type MovimentoCaixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SessaoCaixaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          string          `gorm:"type:varchar(20);not null"`
	MetodoPagamento *string       `gorm:"type:varchar(20)"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao     string          `gorm:"not null"`
	// ReferenciaID links to the originating Venda or manual operation
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (m *MovimentoCaixa) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
