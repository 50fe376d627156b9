package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

const productsDump = `{
  "data": [
    {"id": "1", "name": "Sac", "status": "active", "price": 15000, "stock": 4, "createdAt": "2024-03-01"},
    {"id": "2", "name": "Bon cadeau", "status": "draft", "price": 0, "createdAt": "2024-03-02"},
    {"id": "3", "name": "Montre", "status": "active", "price": "26000", "stock": 1, "createdAt": "2024-03-03"}
  ],
  "meta": {"totalPages": 1}
}`

const ordersDump = `[
  {"id": "o1", "orderNumber": "CMD-1", "status": "delivered", "totalAmount": 12000, "paymentMethod": "wave"},
  {"id": "o2", "orderNumber": "CMD-2", "status": "pending", "totalAmount": 8000, "paymentMethod": "card"}
]`

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run ejecuta catalogq con los args dados y devuelve stdout, stderr y el error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_JSONFiltradoConEstadisticasCompletas(t *testing.T) {
	out, _, err := run(t, "", "products", "-f", writeDump(t, productsDump), "--status", "active", "--price", "0-25000")
	require.NoError(t, err)

	var resp dto.CatalogQueryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "1", resp.Records[0].ID)
	assert.Equal(t, "local", resp.StoreID)
	assert.Equal(t, 3, resp.Stats.TotalCount)
	assert.Equal(t, "41000", resp.Stats.TotalRevenue.String())
}

func TestProducts_SinLimiteDevuelveTodo(t *testing.T) {
	out, _, err := run(t, "", "products", "-f", writeDump(t, productsDump), "--sort", "name")
	require.NoError(t, err)

	var resp dto.CatalogQueryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Records, 3)
	assert.Equal(t, []string{"2", "3", "1"}, []string{resp.Records[0].ID, resp.Records[1].ID, resp.Records[2].ID})
}

func TestOrders_DesdeStdinConMedioDePago(t *testing.T) {
	out, _, err := run(t, ordersDump, "orders", "--file", "-", "--payment", "mobile_money", "--store", "dakar")
	require.NoError(t, err)

	var resp dto.CatalogQueryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "CMD-1", resp.Records[0].DisplayName)
	assert.Equal(t, "dakar", resp.StoreID)
	assert.Equal(t, 1, resp.Stats.CountsByPaymentMethod["card"], "estadísticas sobre el conjunto completo por defecto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida tabla
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_Tabla(t *testing.T) {
	out, _, err := run(t, "", "products", "-f", writeDump(t, productsDump), "--format", "table", "--sort", "price", "--dir", "desc")
	require.NoError(t, err)

	assert.Contains(t, out, "Nombre")
	assert.Contains(t, out, "Montre")
	assert.Contains(t, out, "26000.00")
	assert.Contains(t, out, "1-3 de 3 coincidencias")
	assert.Contains(t, out, "active=2 archived=0 draft=1")
	assert.Less(t, strings.Index(out, "Montre"), strings.Index(out, "Bon cadeau"), "orden por precio desc")
}

func TestOrders_TablaIncluyeMediosDePago(t *testing.T) {
	out, _, err := run(t, "", "orders", "-f", writeDump(t, ordersDump), "--format", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Pago")
	assert.Contains(t, out, "Por medio de pago:")
	assert.Contains(t, out, "mobile_money=1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestErrores(t *testing.T) {
	dump := writeDump(t, productsDump)
	cases := map[string][]string{
		"sin --file":           {"products"},
		"formato":              {"products", "-f", dump, "--format", "xml"},
		"sort":                 {"products", "-f", dump, "--sort", "color"},
		"rango de fechas":      {"products", "-f", dump, "--from", "2024-03-05", "--to", "2024-03-01"},
		"archivo":              {"products", "-f", filepath.Join(t.TempDir(), "no-existe.json")},
		"payment en productos": {"products", "-f", dump, "--payment", "card"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, "", args...)
			assert.Error(t, err)
		})
	}
}

func TestJSONInvalido(t *testing.T) {
	_, _, err := run(t, "", "orders", "-f", writeDump(t, `{"data": [`))
	assert.ErrorContains(t, err, "leer")
}
