package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de db.Transaction con repos atados a la tx.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// errCallback marca errores devueltos por fn para no confundirlos con fallos de begin/commit.
type errCallback struct{ err error }

func (e errCallback) Error() string { return e.err.Error() }

// Run ejecuta fn en una transacción; rollback si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(NewProductRepository(tx), NewMovementRepository(tx)); err != nil {
			return errCallback{err: err}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	var cbErr errCallback
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
