// Package apperr defines the typed error taxonomy shared by services and
// handlers. Callers branch with errors.Is to decide user messaging — errors
// are values here, never control flow.
package apperr

import "errors"

var (
	// ErrValorInvalido — negative or out-of-range numeric input
	// (saldo inicial < 0, taxa de comissão fora de [0,1], etc.).
	ErrValorInvalido = errors.New("valor inválido")

	// ErrCaixaJaAberta — an open cash session already exists for the
	// (dono_ref, escopo) pair.
	ErrCaixaJaAberta = errors.New("já existe um caixa aberto")

	// ErrCaixaJaFechada — the session was already closed; closing is terminal.
	ErrCaixaJaFechada = errors.New("o caixa já está fechado")

	// ErrNaoEncontrado — session, sale, or owner lookup miss.
	ErrNaoEncontrado = errors.New("registro não encontrado")

	// ErrDadosInconsistentes — malformed row in a fetched batch (negative
	// quantity/price). The whole aggregation fails; partial totals are never
	// returned because financial reconciliation must be trustworthy.
	ErrDadosInconsistentes = errors.New("dados inconsistentes")

	// ErrEstoqueInsuficiente — sale quantity exceeds available stock.
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")

	// ErrTransicaoInvalida — sale status transition not allowed
	// (confirmed rows are immutable except confirmada → cancelada).
	ErrTransicaoInvalida = errors.New("transição de status inválida")
)
