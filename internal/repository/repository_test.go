package repository

import (
	"context"
	"testing"
	"time"

	"vendr/internal/dto"
	"vendr/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The production partial unique index on sessões is Postgres-only; the
// repository behaviour under test does not depend on it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Empresa{},
		&model.Usuario{},
		&model.Vendedor{},
		&model.Produto{},
		&model.MovimentoEstoque{},
		&model.Venda{},
		&model.Despesa{},
		&model.SessaoCaixa{},
		&model.MovimentoCaixa{},
		&model.Kit{},
		&model.KitItem{},
	))
	return db
}

func seedVenda(t *testing.T, db *gorm.DB, usuarioID uuid.UUID, status, metodo string, valor string, qtd int, criadaEm time.Time) model.Venda {
	t.Helper()
	produto := model.Produto{Nome: "Brinco", PrecoVenda: decimal.RequireFromString(valor), UsuarioID: &usuarioID, EstoqueAtual: 100}
	require.NoError(t, db.Create(&produto).Error)
	v := model.Venda{
		UsuarioID:       usuarioID,
		ProdutoID:       produto.ID,
		Quantidade:      qtd,
		PrecoUnitario:   decimal.RequireFromString(valor),
		MetodoPagamento: metodo,
		Status:          status,
		CreatedAt:       criadaEm,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func TestVendaRepository_QueryFiltraPorDonoEJanela(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVendaRepository(db)
	ctx := context.Background()

	dono := uuid.New()
	outro := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seedVenda(t, db, dono, model.VendaConfirmada, model.MetodoPix, "50", 1, base)
	seedVenda(t, db, dono, model.VendaConfirmada, model.MetodoDinheiro, "30", 1, base.Add(time.Hour))
	seedVenda(t, db, dono, model.VendaConfirmada, model.MetodoPix, "99", 1, base.AddDate(0, 0, 2)) // fora da janela
	seedVenda(t, db, outro, model.VendaConfirmada, model.MetodoPix, "10", 1, base)                 // outro dono

	vendas, err := repo.Query(ctx, dto.VendaFilter{
		UsuarioID: &dono,
		DataDe:    base.Add(-time.Hour),
		DataAte:   base.AddDate(0, 0, 1),
		Status:    model.VendaConfirmada,
	})
	require.NoError(t, err)
	require.Len(t, vendas, 2)
	// ordered by created_at ASC
	assert.True(t, vendas[0].PrecoUnitario.Equal(decimal.RequireFromString("50")))
	assert.True(t, vendas[1].PrecoUnitario.Equal(decimal.RequireFromString("30")))
}

func TestVendaRepository_ListPagina(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVendaRepository(db)
	ctx := context.Background()

	dono := uuid.New()
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedVenda(t, db, dono, model.VendaConfirmada, model.MetodoPix, "10", 1, base.Add(time.Duration(i)*time.Minute))
	}

	vendas, total, err := repo.List(ctx, dto.VendaFilter{UsuarioID: &dono, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, vendas, 2)
	// DESC ordering: page 2 holds the 3rd and 4th most recent rows
	assert.True(t, vendas[0].CreatedAt.After(vendas[1].CreatedAt))
}

func TestVendaRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVendaRepository(db)
	ctx := context.Background()

	v := seedVenda(t, db, uuid.New(), model.VendaPendente, model.MetodoCartao, "25", 2, time.Now())
	require.NoError(t, repo.UpdateStatus(ctx, v.ID, model.VendaConfirmada))

	got, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VendaConfirmada, got.Status)
	require.NotNil(t, got.Produto) // Preload
	assert.Equal(t, "Brinco", got.Produto.Nome)
}

func TestCaixaRepository_SessaoAbertaPorDonoEEscopo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCaixaRepository(db)
	ctx := context.Background()

	dono := uuid.New()

	got, err := repo.FindSessaoAberta(ctx, dono, "solo")
	require.NoError(t, err)
	assert.Nil(t, got, "sem sessão aberta deve retornar nil, nil")

	sessao := &model.SessaoCaixa{DonoRef: dono, Escopo: "solo", SaldoInicial: decimal.RequireFromString("100"), Status: "aberta"}
	require.NoError(t, repo.CreateSessao(ctx, sessao))

	got, err = repo.FindSessaoAberta(ctx, dono, "solo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sessao.ID, got.ID)

	// same dono, different scope: no hit
	got, err = repo.FindSessaoAberta(ctx, dono, "vendedor")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCaixaRepository_SomaMovimentos(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCaixaRepository(db)
	ctx := context.Background()

	sessao := &model.SessaoCaixa{DonoRef: uuid.New(), Escopo: "solo", SaldoInicial: decimal.Zero, Status: "aberta"}
	require.NoError(t, repo.CreateSessao(ctx, sessao))

	require.NoError(t, repo.CreateMovimento(ctx, &model.MovimentoCaixa{
		SessaoCaixaID: sessao.ID, Tipo: "entrada_manual", Valor: decimal.RequireFromString("50"), Descricao: "troco",
	}))
	require.NoError(t, repo.CreateMovimento(ctx, &model.MovimentoCaixa{
		SessaoCaixaID: sessao.ID, Tipo: "saida_manual", Valor: decimal.RequireFromString("-20"), Descricao: "sangria",
	}))

	soma, err := repo.SomaMovimentos(ctx, sessao.ID)
	require.NoError(t, err)
	assert.True(t, soma.Equal(decimal.RequireFromString("30")), "soma = %s", soma)

	// the ledger of another session is untouched
	outra := &model.SessaoCaixa{DonoRef: uuid.New(), Escopo: "solo", SaldoInicial: decimal.Zero, Status: "aberta"}
	require.NoError(t, repo.CreateSessao(ctx, outra))
	soma, err = repo.SomaMovimentos(ctx, outra.ID)
	require.NoError(t, err)
	assert.True(t, soma.IsZero())
}

func TestProdutoRepository_AjustarEstoqueTx(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	dono := uuid.New()
	p := &model.Produto{Nome: "Colar", PrecoVenda: decimal.RequireFromString("40"), UsuarioID: &dono, EstoqueAtual: 10}
	require.NoError(t, repo.Create(ctx, p))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.AjustarEstoqueTx(tx, p.ID, -4); err != nil {
			return err
		}
		return repo.CreateMovimentoTx(tx, &model.MovimentoEstoque{
			ProdutoID: p.ID, Tipo: "venda", Quantidade: -4,
			EstoqueAnterior: 10, EstoqueNovo: 6, Motivo: "Venda",
		})
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.EstoqueAtual)

	movs, err := repo.ListMovimentos(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, -4, movs[0].Quantidade)
}

func TestProdutoRepository_ListAbaixoDoMinimo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProdutoRepository(db)
	ctx := context.Background()

	dono := uuid.New()
	baixo := &model.Produto{Nome: "Pulseira", PrecoVenda: decimal.RequireFromString("15"), UsuarioID: &dono, EstoqueAtual: 1, EstoqueMinimo: 5}
	ok := &model.Produto{Nome: "Anel", PrecoVenda: decimal.RequireFromString("20"), UsuarioID: &dono, EstoqueAtual: 9, EstoqueMinimo: 5}
	inativo := &model.Produto{Nome: "Tiara", PrecoVenda: decimal.RequireFromString("8"), UsuarioID: &dono, EstoqueAtual: 0, EstoqueMinimo: 5}
	require.NoError(t, repo.Create(ctx, baixo))
	require.NoError(t, repo.Create(ctx, ok))
	require.NoError(t, repo.Create(ctx, inativo))
	// bool zero-values are skipped on insert because of the column default
	require.NoError(t, db.Model(inativo).Update("ativo", false).Error)

	got, err := repo.ListAbaixoDoMinimo(ctx, nil, &dono)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pulseira", got[0].Nome)
}
