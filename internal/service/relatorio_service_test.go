package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/model"
	"vendr/internal/service"
)

func TestResumo_ComissaoDeVendedor(t *testing.T) {
	vendedorRepo := newFakeVendedorRepo()
	vendaRepo := &fakeVendaRepo{}
	svc := service.NewRelatorioService(vendaRepo, nil, vendedorRepo, nil, nil)

	empresaID := uuid.New()
	vendedor := &model.Vendedor{
		EmpresaID:    empresaID,
		Nome:         "Rita",
		TaxaComissao: decimal.NewFromFloat(0.20),
		Ativo:        true,
	}
	require.NoError(t, vendedorRepo.Create(context.Background(), vendedor))

	conta := domain.Vendedor(uuid.New(), vendedor.ID, empresaID)
	v := vendaConfirmada(conta.UsuarioID, model.MetodoPix, 150)
	v.VendedorID = &vendedor.ID
	vendaRepo.vendas = append(vendaRepo.vendas, v)

	resumo, err := svc.Resumo(context.Background(), conta,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "150", resumo.TotalVendido.String())
	assert.Equal(t, "30", resumo.ComissaoDevida.String())
}

func TestResumo_VendedorInexistente(t *testing.T) {
	svc := service.NewRelatorioService(&fakeVendaRepo{}, nil, newFakeVendedorRepo(), nil, nil)

	// a stale token may carry a vendedor id that no longer exists; the summary
	// must fail instead of reporting a zero commission
	conta := domain.Vendedor(uuid.New(), uuid.New(), uuid.New())
	_, err := svc.Resumo(context.Background(), conta,
		time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, apperr.ErrNaoEncontrado)
}
