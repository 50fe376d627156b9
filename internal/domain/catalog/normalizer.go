// Package catalog contiene el motor de consultas del catálogo: normalización de
// registros crudos, construcción de predicados, ejecución del pipeline
// filtro → orden → página y agregación de estadísticas.
//
// Todo el paquete es puro: no hace I/O, no guarda estado entre llamadas y nunca
// modifica los registros de entrada. Es seguro llamarlo desde varias goroutines
// siempre que nadie modifique el slice de entrada durante la llamada.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Issue anomalía de datos absorbida durante la normalización. Nunca es un error.
type Issue string

const (
	IssueMissingID        Issue = "missing_id"
	IssueDuplicateID      Issue = "duplicate_id"
	IssueBadPrice         Issue = "bad_price"
	IssueNegativePrice    Issue = "negative_price"
	IssueBadQuantity      Issue = "bad_quantity"
	IssueNegativeQuantity Issue = "negative_quantity"
	IssueUnknownStatus    Issue = "unknown_status"
	IssueUnknownPayment   Issue = "unknown_payment_method"
	IssueBadCreatedAt     Issue = "bad_created_at"
)

// Report resumen de la normalización de un lote.
type Report struct {
	Received int           // registros crudos recibidos
	Kept     int           // registros normalizados devueltos
	Issues   map[Issue]int // conteo por tipo de anomalía
}

// HasIssues informa si hubo alguna anomalía en el lote.
func (r Report) HasIssues() bool {
	for _, n := range r.Issues {
		if n > 0 {
			return true
		}
	}
	return false
}

// maxQuantity cota superior representable en int64.
var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// Alias de campos aceptados por la API de tiendas (camelCase, snake_case y nombres históricos).
var (
	idKeys       = []string{"id", "_id", "uuid"}
	nameKeys     = []string{"displayName", "display_name", "name", "title", "reference", "orderNumber", "order_number"}
	descKeys     = []string{"description", "desc", "summary"}
	statusKeys   = []string{"status", "state"}
	categoryKeys = []string{"category", "categoryName", "category_name"}
	priceKeys    = []string{"price", "totalAmount", "total_amount", "total", "amount"}
	qtyKeys      = []string{"quantity", "stockLevel", "stock_level", "stock", "itemCount", "item_count", "items_count"}
	createdKeys  = []string{"createdAt", "created_at", "date", "created"}
	paymentKeys  = []string{"paymentMethod", "payment_method", "payment"}
)

// Normalize convierte un registro crudo en un CatalogRecord tipado aplicando valores por defecto:
// quantity 0, category "uncategorized", price 0 si falta o no es numérico.
// Los valores negativos de price y quantity son datos erróneos: se llevan a 0 y se reportan.
func Normalize(kind entity.RecordKind, raw entity.RawRecord) (entity.CatalogRecord, []Issue) {
	var issues []Issue
	rec := entity.CatalogRecord{
		Kind:     kind,
		Category: entity.DefaultCategory,
		Price:    decimal.Zero,
	}

	rec.ID = toString(first(raw, idKeys...))
	if rec.ID == "" {
		issues = append(issues, IssueMissingID)
	}
	rec.DisplayName = toString(first(raw, nameKeys...))
	rec.Description = toString(first(raw, descKeys...))

	rec.Status = entity.ParseStatus(kind, toString(first(raw, statusKeys...)))
	if rec.Status == entity.StatusUnknown {
		issues = append(issues, IssueUnknownStatus)
	}

	if cat := categoryName(first(raw, categoryKeys...)); cat != "" {
		rec.Category = cat
	}

	if v := first(raw, priceKeys...); v != nil {
		price, ok := toDecimal(v)
		switch {
		case !ok:
			issues = append(issues, IssueBadPrice)
		case price.IsNegative():
			issues = append(issues, IssueNegativePrice)
		default:
			rec.Price = price
		}
	}

	if v := first(raw, qtyKeys...); v != nil {
		qty, ok := toDecimal(v)
		switch {
		case !ok:
			issues = append(issues, IssueBadQuantity)
		case qty.IsNegative():
			issues = append(issues, IssueNegativeQuantity)
		case qty.GreaterThan(maxQuantity):
			issues = append(issues, IssueBadQuantity)
		default:
			rec.Quantity = qty.IntPart()
		}
	}

	if v := first(raw, createdKeys...); v != nil {
		t, ok := toTime(v)
		if !ok {
			issues = append(issues, IssueBadCreatedAt)
		}
		rec.CreatedAt = t
	}

	if kind == entity.KindOrder {
		rec.PaymentMethod = entity.ParsePaymentMethod(toString(first(raw, paymentKeys...)))
		if rec.PaymentMethod == entity.PaymentUnknown {
			issues = append(issues, IssueUnknownPayment)
		}
	}

	return rec, issues
}

// NormalizeAll normaliza un lote completo y garantiza IDs únicos:
// un registro sin ID recibe "row-<posición>" y, ante IDs repetidos, gana la primera aparición.
// El orden de entrada se conserva.
func NormalizeAll(kind entity.RecordKind, raws []entity.RawRecord) ([]entity.CatalogRecord, Report) {
	report := Report{Received: len(raws), Issues: make(map[Issue]int)}
	out := make([]entity.CatalogRecord, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))

	for i, raw := range raws {
		rec, issues := Normalize(kind, raw)
		for _, is := range issues {
			report.Issues[is]++
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", i+1)
		}
		if _, dup := seen[rec.ID]; dup {
			report.Issues[IssueDuplicateID]++
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	report.Kept = len(out)
	return out, report
}

// ── helpers de coerción ───────────────────────────────────────────────────────

func first(raw entity.RawRecord, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	case [16]byte: // uuid de PostgreSQL vía pgx
		return fmt.Sprintf("%x-%x-%x-%x-%x", s[0:4], s[4:6], s[6:8], s[8:10], s[10:16])
	}
	return ""
}

// categoryName acepta un string o un objeto embebido {"name": ...}.
func categoryName(v any) string {
	if m, ok := v.(map[string]any); ok {
		return toString(first(entity.RawRecord(m), "name", "title", "slug"))
	}
	return toString(v)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return toDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		return parseNumeric(n)
	}
	return decimal.Zero, false
}

// parseNumeric interpreta cadenas como "15 000", "1,5", "1,250.00", "1.5e3" o "25000 FCFA".
func parseNumeric(s string) (decimal.Decimal, bool) {
	if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
		return d, true
	}
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',', r == '-':
			b.WriteRune(r)
		case (r == 'e' || r == 'E') && betweenDigits(rs, i):
			b.WriteRune(r)
		case unicode.IsSpace(r), unicode.IsLetter(r), unicode.IsSymbol(r):
		default:
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return decimal.Zero, false
	}
	// El último separador que aparezca es el decimal; el otro es de miles.
	lastComma, lastDot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// betweenDigits exponente: un dígito antes y un dígito (o signo) después.
func betweenDigits(rs []rune, i int) bool {
	if i == 0 || i == len(rs)-1 || !unicode.IsDigit(rs[i-1]) {
		return false
	}
	next := rs[i+1]
	return unicode.IsDigit(next) || next == '-' || next == '+'
}

var createdLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime acepta time.Time, ISO-8601 en sus variantes comunes y epoch en segundos o milisegundos.
// Todo se devuelve en UTC.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range createdLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	}
	d, ok := toDecimal(v)
	if !ok || d.IsNegative() || d.GreaterThan(maxQuantity) {
		return time.Time{}, false
	}
	epoch := d.IntPart()
	if epoch > 1e12 {
		return time.UnixMilli(epoch).UTC(), true
	}
	return time.Unix(epoch, 0).UTC(), true
}
