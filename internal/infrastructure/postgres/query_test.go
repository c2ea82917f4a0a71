package postgres

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// placeholders devuelve el mayor $n y verifica que $1..$n aparezcan todos.
func placeholders(t *testing.T, query string) int {
	t.Helper()
	seen := map[string]bool{}
	top := 0
	for _, m := range placeholderRe.FindAllStringSubmatch(query, -1) {
		seen[m[1]] = true
		var n int
		_, err := fmt.Sscanf(m[1], "%d", &n)
		require.NoError(t, err)
		if n > top {
			top = n
		}
	}
	for i := 1; i <= top; i++ {
		assert.True(t, seen[fmt.Sprint(i)], "falta $%d en %s", i, query)
	}
	return top
}

func TestProductWhere_SinFiltros(t *testing.T) {
	where, args := productWhere(repository.ProductFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	query, all := productListQuery(where, args, 20, 40)
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 40}, all)
	assert.Equal(t, 2, placeholders(t, query))
}

func TestProductWhere_TodosLosFiltros(t *testing.T) {
	f := repository.ProductFilter{
		CategoryID:  "cat",
		LocationID:  "loc",
		SupplierID:  "sup",
		Search:      "50%_a",
		StockStatus: repository.StockStatusLow,
	}
	where, args := productWhere(f)

	assert.True(t, strings.HasPrefix(where, " WHERE "))
	assert.Contains(t, where, "p.category_id = $1")
	assert.Contains(t, where, "p.location_id = $2")
	assert.Contains(t, where, "p.supplier_id = $3")
	assert.Contains(t, where, `(p.name ILIKE $4 ESCAPE '\' OR p.code ILIKE $4 ESCAPE '\')`)
	assert.Contains(t, where, "p.current_stock < p.min_stock")
	assert.Equal(t, []any{"cat", "loc", "sup", `%50\%\_a%`}, args)
	assert.Equal(t, 4, placeholders(t, where))

	query, all := productListQuery(where, args, 10, 0)
	assert.Contains(t, query, "LIMIT $5 OFFSET $6")
	assert.Contains(t, query, "ORDER BY p.name, p.code")
	assert.Len(t, all, 6)
	assert.Equal(t, 6, placeholders(t, query))
	// el conteo reutiliza los argumentos sin paginación
	assert.Len(t, args, 4)
}

func TestProductWhere_BusquedaSolaYEstadoOK(t *testing.T) {
	where, args := productWhere(repository.ProductFilter{Search: "tor", StockStatus: repository.StockStatusOK})
	assert.Equal(t, ` WHERE (p.name ILIKE $1 ESCAPE '\' OR p.code ILIKE $1 ESCAPE '\') AND p.current_stock >= p.min_stock`, where)
	assert.Equal(t, []any{"%tor%"}, args)

	query, all := productListQuery(where, args, 5, 15)
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"%tor%", 5, 15}, all)
}

func TestProductWhere_FiltroIntermedio(t *testing.T) {
	where, args := productWhere(repository.ProductFilter{SupplierID: "sup", Search: "x"})
	assert.Contains(t, where, "p.supplier_id = $1")
	assert.Contains(t, where, "ILIKE $2 ESCAPE")
	assert.Equal(t, []any{"sup", "%x%"}, args)
}

func TestMovementListQuery(t *testing.T) {
	cases := []struct {
		name  string
		f     repository.MovementFilter
		where string
		limit string
		args  []any
	}{
		{"sin filtros", repository.MovementFilter{Limit: 50}, "", "LIMIT $1 OFFSET $2", []any{50, 0}},
		{"producto", repository.MovementFilter{ProductID: "p1", Limit: 10, Offset: 20},
			"WHERE m.product_id = $1", "LIMIT $2 OFFSET $3", []any{"p1", 10, 20}},
		{"tipo", repository.MovementFilter{Type: entity.MovementOut, Limit: 10},
			"WHERE m.type = $1", "LIMIT $2 OFFSET $3", []any{"out", 10, 0}},
		{"producto y tipo", repository.MovementFilter{ProductID: "p1", Type: entity.MovementAdjustment, Limit: 1, Offset: 2},
			"WHERE m.product_id = $1 AND m.type = $2", "LIMIT $3 OFFSET $4", []any{"p1", "adjustment", 1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := movementListQuery(tc.f)
			if tc.where == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tc.where)
			}
			assert.Contains(t, query, tc.limit)
			assert.Contains(t, query, "ORDER BY m.created_at DESC, m.id DESC")
			assert.Equal(t, tc.args, args)
			assert.Equal(t, len(tc.args), placeholders(t, query))
		})
	}
}

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%abc%", containsPattern("abc"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, containsPattern(`c:\tmp`))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
	assert.False(t, isUniqueViolation(nil))
}
