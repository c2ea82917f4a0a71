package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestApplyMovement(t *testing.T) {
	cases := []struct {
		name    string
		current decimal.Decimal
		typ     entity.MovementType
		qty     decimal.Decimal
		want    decimal.Decimal
		wantErr error
	}{
		{"entrada suma", d(15), entity.MovementIn, d(5), d(20), nil},
		{"entrada cero", d(15), entity.MovementIn, d(0), d(15), nil},
		{"salida resta", d(15), entity.MovementOut, d(7), d(8), nil},
		{"salida deja en cero", d(15), entity.MovementOut, d(15), d(0), nil},
		{"salida insuficiente", d(15), entity.MovementOut, d(100), d(15), domain.ErrInsufficientStock},
		{"ajuste positivo", d(2), entity.MovementAdjustment, d(3), d(5), nil},
		{"ajuste negativo", d(10), entity.MovementAdjustment, d(-4), d(6), nil},
		{"ajuste se recorta en cero", d(2), entity.MovementAdjustment, d(-50), d(0), nil},
		{"entrada negativa", d(2), entity.MovementIn, d(-1), d(2), domain.ErrInvalidInput},
		{"tipo desconocido", d(2), entity.MovementType("transfer"), d(1), d(2), domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.ApplyMovement(tc.current, tc.typ, tc.qty)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, tc.want.Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestApplyMovement_Decimales(t *testing.T) {
	got, err := inventory.ApplyMovement(decimal.RequireFromString("2.5"), entity.MovementOut, decimal.RequireFromString("0.75"))
	require.NoError(t, err)
	assert.Equal(t, "1.75", got.String())
}

func TestRecordedQuantity(t *testing.T) {
	assert.True(t, d(4).Equal(inventory.RecordedQuantity(d(-4))))
	assert.True(t, d(4).Equal(inventory.RecordedQuantity(d(4))))
}

func TestValidateAmount(t *testing.T) {
	ok := []string{"0", "1.2345", "-3.5", "99999999999999.9999", "-99999999999999.9999", "10.50000"}
	for _, v := range ok {
		assert.NoError(t, inventory.ValidateAmount("quantity", decimal.RequireFromString(v)), v)
	}
	bad := []string{"0.00005", "1.23456", "100000000000000", "-100000000000000", "1e15"}
	for _, v := range bad {
		err := inventory.ValidateAmount("quantity", decimal.RequireFromString(v))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, v)
		assert.Contains(t, err.Error(), "quantity", v)
	}
}

func TestApplyMovement_LimitesDeColumna(t *testing.T) {
	_, err := inventory.ApplyMovement(d(0), entity.MovementIn, decimal.RequireFromString("0.00005"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyMovement(d(0), entity.MovementAdjustment, decimal.RequireFromString("1e15"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// la cantidad cabe pero el resultado no
	near := decimal.RequireFromString("99999999999999")
	got, err := inventory.ApplyMovement(near, entity.MovementIn, d(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, near.Equal(got))

	got, err = inventory.ApplyMovement(near, entity.MovementIn, decimal.RequireFromString("0.9999"))
	require.NoError(t, err)
	assert.Equal(t, "99999999999999.9999", got.String())
}
