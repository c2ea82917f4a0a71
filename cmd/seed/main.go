// seed crea el usuario administrador inicial y carga productos de ejemplo.
//
// Uso:
//
//	go run ./cmd/seed [-email admin@x.co] [-password secreto] [-csv productos.csv] [-latin1]
//
// El CSV usa ';' como separador: code;name;current_stock;min_stock (la primera fila puede ser cabecera).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/infrastructure/store"
	"github.com/jhoicas/inventario-ledger-api/pkg/config"
	"github.com/jhoicas/inventario-ledger-api/pkg/logger"
)

type sampleProduct struct {
	code, name string
	stock, min int64
}

// Los tres últimos quedan bajo el mínimo para que /products/alerts tenga datos.
var samples = []sampleProduct{
	{"TOR-HEX-001", "Tornillo hexagonal 1/4\"", 250, 50},
	{"TUE-HEX-002", "Tuerca hexagonal 1/4\"", 300, 50},
	{"ARA-PLA-003", "Arandela plana 1/4\"", 400, 80},
	{"BRO-MAD-004", "Broca para madera 8mm", 40, 10},
	{"BRO-MET-005", "Broca para metal 6mm", 35, 10},
	{"LIJ-120-006", "Lija grano 120", 120, 30},
	{"CIN-AIS-007", "Cinta aislante negra", 60, 15},
	{"SIL-TRA-008", "Silicona transparente 280ml", 25, 8},
	{"GUA-NIT-009", "Guantes de nitrilo talla M", 90, 20},
	{"DIS-COR-010", "Disco de corte 4 1/2\"", 45, 12},
	{"PIN-BRO-011", "Pincel de brocha 2\"", 30, 10},
	{"TAC-FIS-012", "Taco fisher 3/8\"", 500, 100},
	{"MAR-UNI-013", "Martillo de uña 16oz", 3, 5},
	{"FLE-MET-014", "Flexómetro 5m", 2, 6},
	{"CLA-2P-015", "Clavo 2 pulgadas (kg)", 4, 10},
}

func main() {
	email := flag.String("email", "usertesting@qpalliance.co", "email del administrador")
	password := flag.String("password", "TestingQp#1", "contraseña del administrador")
	csvPath := flag.String("csv", "", "CSV de productos (code;name;current_stock;min_stock)")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	switch _, err := authUC.CreateUser(ctx, *email, *password, "Administrador", entity.RoleAdmin); {
	case err == nil:
		log.Info().Str("email", *email).Msg("administrador creado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("administrador ya existe")
	default:
		log.Fatal().Err(err).Msg("crear administrador")
	}

	rows := samples
	if *csvPath != "" {
		rows, err = readCSV(*csvPath, *latin1)
		if err != nil {
			log.Fatal().Err(err).Str("file", *csvPath).Msg("leer CSV")
		}
	}

	productUC := usecase.NewProductUseCase(st.Products, st.Categories, st.Locations, st.Suppliers, st.Tx, nil)
	created, skipped := 0, 0
	for _, p := range rows {
		stock, minStock := decimal.NewFromInt(p.stock), decimal.NewFromInt(p.min)
		_, err := productUC.Create(ctx, dto.CreateProductRequest{
			Code:         p.code,
			Name:         p.name,
			CurrentStock: &stock,
			MinStock:     &minStock,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			log.Error().Err(err).Str("code", p.code).Msg("crear producto")
		}
	}
	log.Info().Int("creados", created).Int("existentes", skipped).Msg("seed terminado")
}

func readCSV(path string, latin1 bool) ([]sampleProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	return parseCSV(r)
}

func parseCSV(r io.Reader) ([]sampleProduct, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	var out []sampleProduct
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "code") {
			continue
		}
		stock, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: current_stock: %w", line, err)
		}
		minStock, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: min_stock: %w", line, err)
		}
		out = append(out, sampleProduct{
			code:  strings.TrimSpace(rec[0]),
			name:  strings.TrimSpace(rec[1]),
			stock: stock.IntPart(),
			min:   minStock.IntPart(),
		})
	}
}
