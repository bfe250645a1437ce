package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem vendible del menú. Su consumo de materias primas
// se define en Recipe; el stock de ingredientes se maneja en StockSnapshot.
// Mismo ciclo de vida que Ingredient: desactivar, nunca borrar si está referenciado.
type Product struct {
	ID          string
	BusinessID  string
	CategoryID  string // vacío si no tiene categoría
	Name        string // único por negocio
	Description string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
