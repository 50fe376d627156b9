package entity

import "strings"

// RecordKind distingue los dos tipos de registro que maneja el catálogo.
type RecordKind string

const (
	KindProduct RecordKind = "product"
	KindOrder   RecordKind = "order"
)

// ParseRecordKind acepta singular o plural ("products", "orders").
func ParseRecordKind(s string) (RecordKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return KindProduct, true
	case "order", "orders":
		return KindOrder, true
	}
	return "", false
}

// Statuses devuelve el dominio completo de estados del tipo, en orden de presentación.
// No incluye StatusUnknown.
func (k RecordKind) Statuses() []Status {
	switch k {
	case KindProduct:
		return []Status{StatusActive, StatusDraft, StatusArchived}
	case KindOrder:
		return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	}
	return nil
}

// Valid informa si el tipo es uno de los conocidos.
func (k RecordKind) Valid() bool {
	return k == KindProduct || k == KindOrder
}

// Status estado de un producto o de un pedido. Cada tipo tiene su propio dominio cerrado;
// los valores fuera del dominio se decodifican como StatusUnknown.
type Status string

const (
	// Productos
	StatusActive   Status = "active"
	StatusDraft    Status = "draft"
	StatusArchived Status = "archived"

	// Pedidos
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"

	StatusUnknown Status = "unknown"
)

// statusAliases variantes observadas en la API de tiendas (mayúsculas, francés, ortografía US).
var statusAliases = map[string]Status{
	"published":  StatusActive,
	"actif":      StatusActive,
	"brouillon":  StatusDraft,
	"archive":    StatusArchived,
	"archivé":    StatusArchived,
	"en_attente": StatusPending,
	"en attente": StatusPending,
	"en_cours":   StatusProcessing,
	"expédié":    StatusShipped,
	"expedie":    StatusShipped,
	"livré":      StatusDelivered,
	"livre":      StatusDelivered,
	"annulé":     StatusCancelled,
	"annule":     StatusCancelled,
	"canceled":   StatusCancelled,
}

// ParseStatus decodifica un estado dentro del dominio del tipo indicado.
// Nunca falla: lo que no pertenece al dominio es StatusUnknown.
func ParseStatus(kind RecordKind, s string) Status {
	key := strings.ToLower(strings.TrimSpace(s))
	candidate := Status(key)
	if alias, ok := statusAliases[key]; ok {
		candidate = alias
	}
	for _, st := range kind.Statuses() {
		if st == candidate {
			return st
		}
	}
	return StatusUnknown
}

// PaymentMethod medio de pago de un pedido.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentMobileMoney    PaymentMethod = "mobile_money"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentUnknown        PaymentMethod = "unknown"
)

// PaymentMethods dominio completo de medios de pago (sin PaymentUnknown).
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentMobileMoney, PaymentBankTransfer, PaymentCashOnDelivery}
}

var paymentAliases = map[string]PaymentMethod{
	"credit_card":  PaymentCard,
	"stripe":       PaymentCard,
	"carte":        PaymentCard,
	"momo":         PaymentMobileMoney,
	"mobile":       PaymentMobileMoney,
	"orange_money": PaymentMobileMoney,
	"wave":         PaymentMobileMoney,
	"transfer":     PaymentBankTransfer,
	"virement":     PaymentBankTransfer,
	"cod":          PaymentCashOnDelivery,
	"cash":         PaymentCashOnDelivery,
	"livraison":    PaymentCashOnDelivery,
}

// ParsePaymentMethod decodifica el medio de pago; desconocido → PaymentUnknown.
func ParsePaymentMethod(s string) PaymentMethod {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if alias, ok := paymentAliases[key]; ok {
		return alias
	}
	for _, pm := range PaymentMethods() {
		if PaymentMethod(key) == pm {
			return pm
		}
	}
	return PaymentUnknown
}
