package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/service"
)

// ── In-memory CaixaRepository ────────────────────────────────────────────────

type fakeCaixaRepo struct {
	sessoes    map[uuid.UUID]*model.SessaoCaixa
	movimentos []model.MovimentoCaixa
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{sessoes: make(map[uuid.UUID]*model.SessaoCaixa)}
}

func (r *fakeCaixaRepo) CreateSessao(_ context.Context, s *model.SessaoCaixa) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AbertaEm.IsZero() {
		s.AbertaEm = time.Now()
	}
	r.sessoes[s.ID] = s
	return nil
}

func (r *fakeCaixaRepo) FindSessaoAberta(_ context.Context, donoRef uuid.UUID, escopo string) (*model.SessaoCaixa, error) {
	for _, s := range r.sessoes {
		if s.DonoRef == donoRef && s.Escopo == escopo && s.Status == "aberta" {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeCaixaRepo) FindSessaoByID(_ context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	s, ok := r.sessoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCaixaRepo) UpdateSessao(_ context.Context, s *model.SessaoCaixa) error {
	r.sessoes[s.ID] = s
	return nil
}

func (r *fakeCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *fakeCaixaRepo) ListMovimentos(_ context.Context, sessaoID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var out []model.MovimentoCaixa
	for _, m := range r.movimentos {
		if m.SessaoCaixaID == sessaoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCaixaRepo) SomaMovimentos(_ context.Context, sessaoID uuid.UUID) (decimal.Decimal, error) {
	soma := decimal.Zero
	for _, m := range r.movimentos {
		if m.SessaoCaixaID == sessaoID {
			soma = soma.Add(m.Valor)
		}
	}
	return soma, nil
}

func (r *fakeCaixaRepo) ListSessoes(_ context.Context, donoRef uuid.UUID, escopo string, page, limit int) ([]model.SessaoCaixa, int64, error) {
	var all []model.SessaoCaixa
	for _, s := range r.sessoes {
		if s.DonoRef == donoRef && s.Escopo == escopo {
			all = append(all, *s)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ repository.CaixaRepository = (*fakeCaixaRepo)(nil)

// ── In-memory VendaRepository ────────────────────────────────────────────────

type fakeVendaRepo struct {
	vendas []model.Venda
}

func (r *fakeVendaRepo) Create(_ context.Context, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.vendas = append(r.vendas, *v)
	return nil
}

func (r *fakeVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	for i := range r.vendas {
		if r.vendas[i].ID == id {
			return &r.vendas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	return r.Create(context.Background(), v)
}

func (r *fakeVendaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range r.vendas {
		if r.vendas[i].ID == id {
			r.vendas[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeVendaRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	return r.UpdateStatus(context.Background(), id, status)
}

func (r *fakeVendaRepo) Query(_ context.Context, f dto.VendaFilter) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if f.VendedorID != nil && (v.VendedorID == nil || *v.VendedorID != *f.VendedorID) {
			continue
		}
		if f.EmpresaID != nil && (v.EmpresaID == nil || *v.EmpresaID != *f.EmpresaID) {
			continue
		}
		if f.UsuarioID != nil && v.UsuarioID != *f.UsuarioID {
			continue
		}
		if !f.DataDe.IsZero() && v.CreatedAt.Before(f.DataDe) {
			continue
		}
		if !f.DataAte.IsZero() && !v.CreatedAt.Before(f.DataAte) {
			continue
		}
		if f.Status != "" && f.Status != "all" && v.Status != f.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVendaRepo) List(ctx context.Context, f dto.VendaFilter) ([]model.Venda, int64, error) {
	all, err := r.Query(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

func (r *fakeVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*fakeVendaRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func vendaConfirmada(usuarioID uuid.UUID, metodo string, valor float64) model.Venda {
	return model.Venda{
		ID:              uuid.New(),
		UsuarioID:       usuarioID,
		ProdutoID:       uuid.New(),
		Quantidade:      1,
		PrecoUnitario:   decimal.NewFromFloat(valor),
		MetodoPagamento: metodo,
		Status:          model.VendaConfirmada,
		CreatedAt:       time.Now(),
	}
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAbrirCaixa(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(50)})

	require.NoError(t, err)
	assert.Equal(t, "aberta", resp.Status)
	assert.Equal(t, "50", resp.SaldoInicial.String())
}

func TestAbrirCaixa_SaldoNegativo(t *testing.T) {
	svc := service.NewCaixaService(newFakeCaixaRepo(), &fakeVendaRepo{})

	_, err := svc.Abrir(context.Background(), domain.Solo(uuid.New()), dto.AbrirCaixaRequest{
		SaldoInicial: d(-10),
	})
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)
}

func TestAbrirCaixa_Duplicada(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	_, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(50)})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(20)})
	assert.ErrorIs(t, err, apperr.ErrCaixaJaAberta)
}

func TestAbrirCaixa_OutroDonoNaoConflita(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})

	_, err := svc.Abrir(context.Background(), domain.Solo(uuid.New()), dto.AbrirCaixaRequest{SaldoInicial: d(50)})
	require.NoError(t, err)
	_, err = svc.Abrir(context.Background(), domain.Solo(uuid.New()), dto.AbrirCaixaRequest{SaldoInicial: d(30)})
	assert.NoError(t, err)
}

func TestFecharCaixa_ComQuebra(t *testing.T) {
	repo := newFakeCaixaRepo()
	vendaRepo := &fakeVendaRepo{}
	svc := service.NewCaixaService(repo, vendaRepo)
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(100)})
	require.NoError(t, err)

	// pix 50 + dinheiro 30 + cartao 20 → total 100, drawer only sees the 30
	vendaRepo.vendas = append(vendaRepo.vendas,
		vendaConfirmada(conta.UsuarioID, model.MetodoPix, 50),
		vendaConfirmada(conta.UsuarioID, model.MetodoDinheiro, 30),
		vendaConfirmada(conta.UsuarioID, model.MetodoCartao, 20),
	)

	fechamento, err := svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(125),
	})
	require.NoError(t, err)
	assert.Equal(t, "100", fechamento.TotalVendido.String())
	assert.Equal(t, "130", fechamento.SaldoTeorico.String())
	assert.Equal(t, "-5", fechamento.Quebra.String())
	assert.Equal(t, "fechada", fechamento.Status)
}

func TestFecharCaixa_MovimentosManuais(t *testing.T) {
	repo := newFakeCaixaRepo()
	vendaRepo := &fakeVendaRepo{}
	svc := service.NewCaixaService(repo, vendaRepo)
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(100)})
	require.NoError(t, err)

	vendaRepo.vendas = append(vendaRepo.vendas, vendaConfirmada(conta.UsuarioID, model.MetodoDinheiro, 30))

	// sangria of 20
	err = svc.RegistrarMovimento(context.Background(), conta, dto.MovimentoManualRequest{
		SessaoCaixaID: resp.ID,
		Tipo:          "saida_manual",
		Valor:         d(20),
		Descricao:     "Pagamento de frete",
	})
	require.NoError(t, err)

	fechamento, err := svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(110),
	})
	require.NoError(t, err)
	// 100 + 30 − 20 = 110 → quebra zero
	assert.Equal(t, "110", fechamento.SaldoTeorico.String())
	assert.True(t, fechamento.Quebra.IsZero())
}

func TestFecharCaixa_IgnoraPendentesECanceladas(t *testing.T) {
	repo := newFakeCaixaRepo()
	vendaRepo := &fakeVendaRepo{}
	svc := service.NewCaixaService(repo, vendaRepo)
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(0)})
	require.NoError(t, err)

	confirmada := vendaConfirmada(conta.UsuarioID, model.MetodoDinheiro, 40)
	pendente := vendaConfirmada(conta.UsuarioID, model.MetodoDinheiro, 99)
	pendente.Status = model.VendaPendente
	cancelada := vendaConfirmada(conta.UsuarioID, model.MetodoPix, 77)
	cancelada.Status = model.VendaCancelada
	vendaRepo.vendas = append(vendaRepo.vendas, confirmada, pendente, cancelada)

	fechamento, err := svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "40", fechamento.TotalVendido.String())
	assert.True(t, fechamento.Quebra.IsZero())
}

func TestFecharCaixa_Idempotencia(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(100)})
	require.NoError(t, err)

	first, err := svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(95),
	})
	require.NoError(t, err)

	// second close must fail without touching the stored result
	_, err = svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(9999),
	})
	assert.ErrorIs(t, err, apperr.ErrCaixaJaFechada)

	sessao := repo.sessoes[uuid.MustParse(resp.ID)]
	require.NotNil(t, sessao.SaldoContado)
	assert.Equal(t, first.SaldoContado.String(), sessao.SaldoContado.String())
	assert.Equal(t, "fechada", sessao.Status)
}

func TestFecharCaixa_NaoEncontrada(t *testing.T) {
	svc := service.NewCaixaService(newFakeCaixaRepo(), &fakeVendaRepo{})

	_, err := svc.Fechar(context.Background(), domain.Solo(uuid.New()), dto.FecharCaixaRequest{
		SessaoCaixaID: uuid.New().String(),
		SaldoContado:  d(10),
	})
	assert.ErrorIs(t, err, apperr.ErrNaoEncontrado)
}

func TestFecharCaixa_SessaoDeOutraConta(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	dona := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), dona, dto.AbrirCaixaRequest{SaldoInicial: d(100)})
	require.NoError(t, err)

	// another account knowing the session id must not be able to close it
	intrusa := domain.Solo(uuid.New())
	_, err = svc.Fechar(context.Background(), intrusa, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(0),
	})
	assert.ErrorIs(t, err, apperr.ErrNaoEncontrado)

	sessao := repo.sessoes[uuid.MustParse(resp.ID)]
	assert.Equal(t, "aberta", sessao.Status)
	assert.Nil(t, sessao.SaldoContado)
}

func TestFecharCaixa_ContadoNegativo(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(100)})
	require.NoError(t, err)

	_, err = svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(-1),
	})
	assert.ErrorIs(t, err, apperr.ErrValorInvalido)

	// validation happens before any state change
	sessao := repo.sessoes[uuid.MustParse(resp.ID)]
	assert.Equal(t, "aberta", sessao.Status)
}

func TestRegistrarMovimento_SaidaNegativada(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(50)})
	require.NoError(t, err)

	err = svc.RegistrarMovimento(context.Background(), conta, dto.MovimentoManualRequest{
		SessaoCaixaID: resp.ID,
		Tipo:          "saida_manual",
		Valor:         d(200),
		Descricao:     "Pagamento de táxi",
	})
	require.NoError(t, err)

	require.Len(t, repo.movimentos, 1)
	assert.Equal(t, "-200", repo.movimentos[0].Valor.String())
}

func TestRegistrarMovimento_SessaoDeOutraConta(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	dona := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), dona, dto.AbrirCaixaRequest{SaldoInicial: d(50)})
	require.NoError(t, err)

	err = svc.RegistrarMovimento(context.Background(), domain.Solo(uuid.New()), dto.MovimentoManualRequest{
		SessaoCaixaID: resp.ID,
		Tipo:          "saida_manual",
		Valor:         d(50),
		Descricao:     "Sangria",
	})
	assert.ErrorIs(t, err, apperr.ErrNaoEncontrado)
	assert.Empty(t, repo.movimentos)
}

func TestRegistrarMovimento_SessaoFechada(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	resp, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(50)})
	require.NoError(t, err)
	_, err = svc.Fechar(context.Background(), conta, dto.FecharCaixaRequest{
		SessaoCaixaID: resp.ID,
		SaldoContado:  d(50),
	})
	require.NoError(t, err)

	err = svc.RegistrarMovimento(context.Background(), conta, dto.MovimentoManualRequest{
		SessaoCaixaID: resp.ID,
		Tipo:          "entrada_manual",
		Valor:         d(10),
		Descricao:     "Troco extra",
	})
	assert.ErrorIs(t, err, apperr.ErrCaixaJaFechada)
}

func TestSessaoAtiva(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := service.NewCaixaService(repo, &fakeVendaRepo{})
	conta := domain.Solo(uuid.New())

	_, err := svc.SessaoAtiva(context.Background(), conta)
	assert.True(t, errors.Is(err, apperr.ErrNaoEncontrado))

	aberta, err := svc.Abrir(context.Background(), conta, dto.AbrirCaixaRequest{SaldoInicial: d(10)})
	require.NoError(t, err)

	ativa, err := svc.SessaoAtiva(context.Background(), conta)
	require.NoError(t, err)
	assert.Equal(t, aberta.ID, ativa.ID)
}
