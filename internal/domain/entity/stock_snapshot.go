package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem sobre los que se lleva stock.
const (
	ItemTypeIngredient = "ingredient"
	ItemTypeProduct    = "product"
)

// StockSnapshot representa el stock actual de un ítem en una sucursal.
// Clave única: (BusinessID, BranchID, ItemType, ItemID). Es una vista
// materializada del ledger de transacciones: solo se muta a través del caso
// de uso de registro de transacciones y puede reconstruirse reproduciendo el
// ledger desde cero. Quantity nunca es negativa.
type StockSnapshot struct {
	BusinessID   string
	BranchID     string
	ItemType     string // ingredient | product
	ItemID       string
	Quantity     decimal.Decimal
	ReorderLevel decimal.Decimal
	UpdatedAt    time.Time
}

// IsLowStock indica si el ítem está en o por debajo de su nivel de reorden.
// Con ReorderLevel en cero no se marca (sin umbral configurado).
func (s *StockSnapshot) IsLowStock() bool {
	return s.ReorderLevel.GreaterThan(decimal.Zero) && s.Quantity.LessThanOrEqual(s.ReorderLevel)
}
