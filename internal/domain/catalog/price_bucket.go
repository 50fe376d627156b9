package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceBucket rango de precio con nombre fijo usado por los filtros del catálogo.
// Los límites superiores son inclusivos: 25000 pertenece a "0-25000".
type PriceBucket string

const (
	BucketFree          PriceBucket = "free"
	Bucket0To25000      PriceBucket = "0-25000"
	Bucket25000To50000  PriceBucket = "25000-50000"
	Bucket50000To100000 PriceBucket = "50000-100000"
	Bucket100000Plus    PriceBucket = "100000+"
)

var (
	limit25000  = decimal.NewFromInt(25000)
	limit50000  = decimal.NewFromInt(50000)
	limit100000 = decimal.NewFromInt(100000)
)

// PriceBuckets devuelve los cinco rangos en orden ascendente. Forman una partición de price ≥ 0.
func PriceBuckets() []PriceBucket {
	return []PriceBucket{BucketFree, Bucket0To25000, Bucket25000To50000, Bucket50000To100000, Bucket100000Plus}
}

// ParsePriceBucket normaliza el nombre recibido del cliente ("gratuit" es sinónimo de "free").
// Un nombre desconocido se conserva tal cual: como rango no coincide con ningún precio.
func ParsePriceBucket(s string) PriceBucket {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "gratuit" || s == "gratis" {
		return BucketFree
	}
	return PriceBucket(s)
}

// Known informa si el rango es uno de los cinco definidos.
func (b PriceBucket) Known() bool {
	for _, k := range PriceBuckets() {
		if b == k {
			return true
		}
	}
	return false
}

// Matches informa si el precio cae en el rango. Rangos desconocidos nunca coinciden.
func (b PriceBucket) Matches(price decimal.Decimal) bool {
	switch b {
	case BucketFree:
		return price.IsZero()
	case Bucket0To25000:
		return price.IsPositive() && price.LessThanOrEqual(limit25000)
	case Bucket25000To50000:
		return price.GreaterThan(limit25000) && price.LessThanOrEqual(limit50000)
	case Bucket50000To100000:
		return price.GreaterThan(limit50000) && price.LessThanOrEqual(limit100000)
	case Bucket100000Plus:
		return price.GreaterThan(limit100000)
	}
	return false
}

// BucketFor devuelve el rango al que pertenece un precio no negativo.
func BucketFor(price decimal.Decimal) (PriceBucket, bool) {
	for _, b := range PriceBuckets() {
		if b.Matches(price) {
			return b, true
		}
	}
	return "", false
}
