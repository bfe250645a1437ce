package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa una materia prima del catálogo. Unit es la unidad
// canónica (kg, g, l, ml, pcs); todas las cantidades de stock y de recetas
// para este ingrediente se expresan en esa unidad.
// Una vez referenciado por una receta no se elimina: solo se desactiva.
type Ingredient struct {
	ID          string
	BusinessID  string
	Name        string // único por negocio
	Unit        string
	CostPerUnit decimal.Decimal
	SKU         string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
