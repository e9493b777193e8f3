package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendr/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (partial
// indexes in particular).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates all tables and applies the schema patches.
// Also used by integration tests against a scratch database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
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
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		return applySchemaPatches(db)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The partial unique index is what actually enforces "at most one open
// session per (dono_ref, escopo)" against concurrent open attempts from
// multiple tabs/devices — the service-level check alone would race.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uidx_sessoes_caixa_aberta') THEN
		    CREATE UNIQUE INDEX uidx_sessoes_caixa_aberta
		        ON sessao_caixas (dono_ref, escopo)
		        WHERE status = 'aberta';
		  END IF;
		END $$`,
		// Dashboard and settlement queries always filter by owner + day window.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_vendas_status_created') THEN
		    CREATE INDEX idx_vendas_status_created ON vendas (status, created_at);
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
