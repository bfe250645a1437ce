package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine es una línea de la receta: cuánto consume una porción del producto
// de un ingrediente. Unit debe coincidir con la unidad canónica del ingrediente
// (se valida al guardar; no hay conversión implícita de unidades).
type RecipeLine struct {
	IngredientID string
	Quantity     decimal.Decimal // requerida por porción, > 0
	Unit         string
}

// Recipe es la lista de materiales (BOM) de un producto: una receta por producto.
// Una receta sin líneas es válida y produce cero porciones disponibles.
type Recipe struct {
	ProductID  string
	BusinessID string
	Lines      []RecipeLine
	UpdatedAt  time.Time
}
