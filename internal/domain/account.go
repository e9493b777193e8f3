// Package domain holds cross-cutting value types shared by services and
// handlers.
package domain

import (
	"github.com/google/uuid"
)

// Escopo identifies which kind of account owns a resource (cash session,
// dashboard, report). It is the tag of the AccountContext variant.
type Escopo string

const (
	EscopoEmpresa  Escopo = "empresa"
	EscopoVendedor Escopo = "vendedor"
	EscopoSolo     Escopo = "solo"
)

// Valid reports whether e is one of the three known scopes.
func (e Escopo) Valid() bool {
	switch e {
	case EscopoEmpresa, EscopoVendedor, EscopoSolo:
		return true
	}
	return false
}

// AccountContext is the tagged variant resolved ONCE at the HTTP boundary
// from the JWT claims and passed explicitly to every service call:
//
//	Dono(empresaID) | Vendedor(vendedorID, empresaID) | Solo(usuarioID)
//
// Business logic dispatches on Escopo instead of string-comparing role fields.
type AccountContext struct {
	Escopo     Escopo
	UsuarioID  uuid.UUID
	EmpresaID  *uuid.UUID // set for empresa and vendedor scopes
	VendedorID *uuid.UUID // set for vendedor scope only
}

// Dono builds the company-owner context.
func Dono(usuarioID, empresaID uuid.UUID) AccountContext {
	return AccountContext{Escopo: EscopoEmpresa, UsuarioID: usuarioID, EmpresaID: &empresaID}
}

// Vendedor builds the individual-seller context.
func Vendedor(usuarioID, vendedorID, empresaID uuid.UUID) AccountContext {
	return AccountContext{Escopo: EscopoVendedor, UsuarioID: usuarioID, EmpresaID: &empresaID, VendedorID: &vendedorID}
}

// Solo builds the autonomous-seller context (no company entity).
func Solo(usuarioID uuid.UUID) AccountContext {
	return AccountContext{Escopo: EscopoSolo, UsuarioID: usuarioID}
}

// DonoRef is the owner reference a cash session is keyed by: the vendedor id
// for seller sessions, the usuario id otherwise.
func (a AccountContext) DonoRef() uuid.UUID {
	if a.Escopo == EscopoVendedor && a.VendedorID != nil {
		return *a.VendedorID
	}
	return a.UsuarioID
}
