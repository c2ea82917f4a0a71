package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCSV_ConCabecera(t *testing.T) {
	in := "code;name;current_stock;min_stock\nTOR-001;Tornillo;10;2\nTUE-002; Tuerca ;0;5\n"
	rows, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sampleProduct{"TOR-001", "Tornillo", 10, 2}, rows[0])
	assert.Equal(t, "Tuerca", rows[1].name)
}

func TestParseCSV_NumeroInvalido(t *testing.T) {
	_, err := parseCSV(strings.NewReader("TOR-001;Tornillo;diez;2\n"))
	assert.ErrorContains(t, err, "línea 1")
}

func TestParseCSV_ColumnasIncompletas(t *testing.T) {
	_, err := parseCSV(strings.NewReader("TOR-001;Tornillo;10\n"))
	assert.Error(t, err)
}

func TestParseCSV_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("FLE-014;Flexómetro;2;6\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.WriteString(raw)
	dir := t.TempDir()
	path := dir + "/p.csv"
	require.NoError(t, writeFile(path, buf.Bytes()))

	rows, err := readCSV(path, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Flexómetro", rows[0].name)
}

func TestSamples_TresBajoMinimo(t *testing.T) {
	low := 0
	codes := map[string]bool{}
	for _, s := range samples {
		if s.stock < s.min {
			low++
		}
		codes[strings.ToUpper(s.code)] = true
	}
	assert.Len(t, samples, 15)
	assert.Len(t, codes, 15)
	assert.Equal(t, 3, low)
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o600)
}
