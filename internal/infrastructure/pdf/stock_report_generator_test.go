package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

func TestGenerateLowStockReport(t *testing.T) {
	g := NewMarotoStockReportGenerator("Inventario QP")
	items := []*entity.Product{
		{Code: "TOR-HEX-001", Name: "Tornillo hexagonal", CurrentStock: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(10), LocationName: "Bodega A"},
		{Code: "CLA-2P-015", Name: "Clavo 2 pulgadas", CurrentStock: decimal.RequireFromString("0.5"), MinStock: decimal.NewFromInt(5)},
	}

	out, err := g.GenerateLowStockReport(context.Background(), items, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateLowStockReport_SinItems(t *testing.T) {
	out, err := NewMarotoStockReportGenerator("").GenerateLowStockReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestNumberFormatoLocal(t *testing.T) {
	g := NewMarotoStockReportGenerator("x")
	assert.Equal(t, "1.234", g.number(decimal.NewFromInt(1234)))
	assert.Equal(t, "2,50", g.number(decimal.RequireFromString("2.5")))
}
