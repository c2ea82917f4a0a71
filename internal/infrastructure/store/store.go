// Package store abre el almacenamiento configurado (pgx, GORM/PostgreSQL o GORM/SQLite)
// y expone sus repositorios detrás de las interfaces de dominio.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/inventario-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger-api/pkg/config"
)

// Store repositorios y tx runner de un mismo backend.
type Store struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Locations  repository.LocationRepository
	Suppliers  repository.SupplierRepository
	Movements  repository.MovementRepository
	Users      repository.UserRepository
	Tx         inventory.TxRunner

	close func() error
}

// Close libera conexiones.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open elige el backend según cfg.Driver y aplica migraciones si cfg.AutoMigrate.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return openPgx(ctx, cfg)
	case config.DriverGorm, config.DriverSQLite:
		return openGorm(cfg)
	default:
		return nil, fmt.Errorf("store: driver no soportado %q", cfg.Driver)
	}
}

func openPgx(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	log.Info().Str("driver", config.DriverPostgres).Msg("almacenamiento listo")
	return &Store{
		Products:   postgres.NewProductRepository(pool),
		Categories: postgres.NewCategoryRepository(pool),
		Locations:  postgres.NewLocationRepository(pool),
		Suppliers:  postgres.NewSupplierRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
		Users:      postgres.NewUserRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openGorm(cfg config.DBConfig) (*Store, error) {
	db, err := gormstore.Open(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := gormstore.AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	log.Info().Str("driver", cfg.Driver).Msg("almacenamiento listo")
	return &Store{
		Products:   gormstore.NewProductRepository(db),
		Categories: gormstore.NewCategoryRepository(db),
		Locations:  gormstore.NewLocationRepository(db),
		Suppliers:  gormstore.NewSupplierRepository(db),
		Movements:  gormstore.NewMovementRepository(db),
		Users:      gormstore.NewUserRepository(db),
		Tx:         gormstore.NewTxRunner(db),
		close:      sqlDB.Close,
	}, nil
}
