package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/service"
)

type fakeVendedorRepo struct {
	vendedores map[uuid.UUID]*model.Vendedor
}

func newFakeVendedorRepo() *fakeVendedorRepo {
	return &fakeVendedorRepo{vendedores: make(map[uuid.UUID]*model.Vendedor)}
}

func (r *fakeVendedorRepo) Create(_ context.Context, v *model.Vendedor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vendedores[v.ID] = v
	return nil
}

func (r *fakeVendedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vendedor, error) {
	v, ok := r.vendedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVendedorRepo) Update(_ context.Context, v *model.Vendedor) error {
	r.vendedores[v.ID] = v
	return nil
}

func (r *fakeVendedorRepo) ListByEmpresa(_ context.Context, empresaID uuid.UUID, incluirInativos bool) ([]model.Vendedor, error) {
	var out []model.Vendedor
	for _, v := range r.vendedores {
		if v.EmpresaID != empresaID {
			continue
		}
		if !incluirInativos && !v.Ativo {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

var _ repository.VendedorRepository = (*fakeVendedorRepo)(nil)

func TestCriarVendedor_TaxaForaDoIntervalo(t *testing.T) {
	svc := service.NewVendedorService(newFakeVendedorRepo(), &fakeVendaRepo{})

	_, err := svc.Criar(context.Background(), uuid.New(), dto.CriarVendedorRequest{
		Nome:         "Maria",
		TaxaComissao: decimal.NewFromFloat(1.5),
	})
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)
}

func TestComissao(t *testing.T) {
	vendedorRepo := newFakeVendedorRepo()
	vendaRepo := &fakeVendaRepo{}
	svc := service.NewVendedorService(vendedorRepo, vendaRepo)
	empresaID := uuid.New()

	criado, err := svc.Criar(context.Background(), empresaID, dto.CriarVendedorRequest{
		Nome:         "João",
		TaxaComissao: decimal.NewFromFloat(0.10),
	})
	require.NoError(t, err)
	vendedorID := uuid.MustParse(criado.ID)

	// 100.00 confirmed + one cancelled row that must not count
	for _, valor := range []float64{60, 40} {
		v := vendaConfirmada(uuid.New(), model.MetodoPix, valor)
		v.VendedorID = &vendedorID
		vendaRepo.vendas = append(vendaRepo.vendas, v)
	}
	cancelada := vendaConfirmada(uuid.New(), model.MetodoDinheiro, 500)
	cancelada.VendedorID = &vendedorID
	cancelada.Status = model.VendaCancelada
	vendaRepo.vendas = append(vendaRepo.vendas, cancelada)

	de := time.Now().Add(-time.Hour)
	ate := time.Now().Add(time.Hour)
	resp, err := svc.Comissao(context.Background(), vendedorID, de, ate)
	require.NoError(t, err)

	assert.Equal(t, "100", resp.TotalVendido.String())
	assert.Equal(t, "10", resp.ComissaoDevida.String())
	assert.Equal(t, 2, resp.Quantidade)
	assert.Equal(t, "50", resp.TicketMedio.String())
}

func TestComissao_VendedorInexistente(t *testing.T) {
	svc := service.NewVendedorService(newFakeVendedorRepo(), &fakeVendaRepo{})

	_, err := svc.Comissao(context.Background(), uuid.New(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, apperr.ErrNaoEncontrado)
}
