package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/service"
)

// openSaleDB builds an in-memory SQLite database with only the given tables.
// A single connection keeps every statement on the same in-memory database;
// the pool would otherwise hand each statement its own empty one.
func openSaleDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// Registering a confirmed sale writes the sale row, the stock decrement and
// the movement inside one transaction. When the movement write fails the sale
// row must not survive on its own.
func TestRegistrarVenda_FalhaNoMovimentoDesfazVenda(t *testing.T) {
	db := openSaleDB(t, &model.Produto{}, &model.Venda{})
	require.NoError(t, db.Migrator().DropTable(&model.MovimentoEstoque{}))

	usuarioID := uuid.New()
	produto := model.Produto{
		Nome:         "Colar",
		PrecoVenda:   decimal.NewFromInt(25),
		UsuarioID:    &usuarioID,
		EstoqueAtual: 5,
		Ativo:        true,
	}
	require.NoError(t, db.Create(&produto).Error)

	svc := service.NewVendaService(
		repository.NewVendaRepository(db),
		repository.NewProdutoRepository(db),
	)

	_, err := svc.Registrar(context.Background(), domain.Solo(usuarioID), dto.RegistrarVendaRequest{
		ProdutoID:       produto.ID.String(),
		Quantidade:      2,
		MetodoPagamento: model.MetodoPix,
		Confirmada:      true,
	})
	require.Error(t, err)

	var vendas int64
	require.NoError(t, db.Model(&model.Venda{}).Count(&vendas).Error)
	assert.Zero(t, vendas)

	var depois model.Produto
	require.NoError(t, db.First(&depois, "id = ?", produto.ID).Error)
	assert.Equal(t, 5, depois.EstoqueAtual)
}

// Same guarantee for kit assembly: when any item's movement write fails, the
// kit header, its items and every stock decrement roll back together.
func TestMontarKit_FalhaNoMovimentoDesfazKit(t *testing.T) {
	db := openSaleDB(t, &model.Produto{}, &model.Kit{}, &model.KitItem{})
	require.NoError(t, db.Migrator().DropTable(&model.MovimentoEstoque{}))

	empresaID := uuid.New()
	produto := model.Produto{
		Nome:         "Pulseira",
		PrecoVenda:   decimal.NewFromInt(12),
		EmpresaID:    &empresaID,
		EstoqueAtual: 8,
		Ativo:        true,
	}
	require.NoError(t, db.Create(&produto).Error)

	svc := service.NewKitService(
		repository.NewKitRepository(db),
		repository.NewProdutoRepository(db),
		db,
	)

	_, err := svc.Montar(context.Background(), empresaID, dto.CriarKitRequest{
		VendedorID: uuid.New().String(),
		Data:       "2026-08-28",
		Itens: []dto.KitItemRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 3},
		},
	})
	require.Error(t, err)

	var kits int64
	require.NoError(t, db.Model(&model.Kit{}).Count(&kits).Error)
	assert.Zero(t, kits)

	var depois model.Produto
	require.NoError(t, db.First(&depois, "id = ?", produto.ID).Error)
	assert.Equal(t, 8, depois.EstoqueAtual)
}
