package availability

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line es una línea de receta vista por el calculador: ingrediente requerido
// por porción. Lleva el nombre además del ID para el fallback legado de
// resolución por nombre.
type Line struct {
	IngredientID   string
	IngredientName string
	Required       decimal.Decimal
}

// StockRef es la referencia de stock que el calculador necesita de un snapshot.
type StockRef struct {
	ItemID   string
	ItemName string
	Quantity decimal.Decimal
}

// Portions calcula cuántas porciones de un producto pueden producirse con el
// stock actual (semántica BOM: el ingrediente más restrictivo determina el
// total). Función pura: no muta líneas ni snapshots.
//
// Reglas:
//   - Receta sin líneas → 0 porciones (una receta que no consume nada no
//     define nada producible).
//   - Cada línea se resuelve primero por ID de ingrediente; solo si no hay
//     coincidencia por ID se intenta por nombre sin distinguir mayúsculas
//     (ruta de compatibilidad con snapshots anteriores a la migración de
//     claves foráneas).
//   - Línea sin stock resuelto → 0 porciones para esa línea.
//   - Por línea: floor(disponible / requerido); resultado = mínimo entre
//     líneas, recortado en >= 0.
func Portions(lines []Line, stock []StockRef) int64 {
	if len(lines) == 0 {
		return 0
	}

	byID := make(map[string]StockRef, len(stock))
	byName := make(map[string]StockRef, len(stock))
	for _, s := range stock {
		byID[s.ItemID] = s
		byName[strings.ToLower(s.ItemName)] = s
	}

	var min int64
	for i, line := range lines {
		// Requerido no positivo: no se puede dividir; la línea no produce nada.
		if !line.Required.GreaterThan(decimal.Zero) {
			return 0
		}
		ref, ok := byID[line.IngredientID]
		if !ok {
			ref, ok = byName[strings.ToLower(line.IngredientName)]
		}
		if !ok {
			// Sin registro de stock: no se puede producir ninguna porción.
			return 0
		}
		p := ref.Quantity.Div(line.Required).Floor().IntPart()
		if i == 0 || p < min {
			min = p
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
