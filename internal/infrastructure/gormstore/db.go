package gormstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/pkg/config"
)

// Open abre la base según cfg.Driver: "sqlite" (archivo o memoria) o "gorm" (PostgreSQL vía GORM).
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gcfg)
	case config.DriverGorm:
		db, err := gorm.Open(postgres.Open(cfg.ConnectionString()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("gorm postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return db, nil
	default:
		return nil, fmt.Errorf("driver no soportado por gormstore: %q", cfg.Driver)
	}
}

// OpenSQLite abre una base SQLite. Se limita a una conexión: SQLite serializa las escrituras
// y así una transacción en curso bloquea al resto igual que el FOR UPDATE de PostgreSQL.
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{TranslateError: true, Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("gorm sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate crea o actualiza las tablas del inventario.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&categoryModel{}, &locationModel{}, &supplierModel{}, &ProductModel{}, &MovementModel{}, &userModel{})
}

// isDuplicate reconoce la violación de unicidad traducida por GORM.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func wrapNotDuplicate(op string, err error, dup error) error {
	if isDuplicate(err) {
		return dup
	}
	return fmt.Errorf("%s: %w", op, err)
}

var errNotFoundProduct = domain.NotFound("producto")
