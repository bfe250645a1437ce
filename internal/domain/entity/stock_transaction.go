package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de referencia de una transacción de stock.
const (
	ReferencePurchase   = "purchase"
	ReferenceSale       = "sale"
	ReferenceWaste      = "waste"
	ReferenceAdjustment = "adjustment"
	ReferenceProduction = "production"
)

// StockTransaction es una entrada del ledger de inventario: registra cada
// delta de stock contra un ítem en una sucursal. Append-only e inmutable;
// las correcciones son nuevas transacciones compensatorias, nunca ediciones.
// Quantity es el delta *solicitado* (con signo), aunque el efecto sobre el
// snapshot haya sido recortado en cero.
type StockTransaction struct {
	ID            string
	BusinessID    string
	BranchID      string
	ItemType      string // ingredient | product
	ItemID        string
	Quantity      decimal.Decimal // positivo entrada, negativo consumo
	ReferenceType string          // purchase | sale | waste | adjustment | production
	ReferenceID   string          // opcional: id de orden, compra, etc.
	Note          string
	CreatedAt     time.Time
	CreatedBy     string
}

// ValidReferenceType verifica que el tipo de referencia sea uno de los conocidos.
func ValidReferenceType(t string) bool {
	switch t {
	case ReferencePurchase, ReferenceSale, ReferenceWaste, ReferenceAdjustment, ReferenceProduction:
		return true
	}
	return false
}
