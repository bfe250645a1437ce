package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineRequest una línea de receta en el body de PUT /api/products/:id/recipe.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"` // por porción, > 0
	Unit         string          `json:"unit"`     // debe coincidir con la unidad del ingrediente
}

// SetRecipeRequest body para PUT /api/products/:id/recipe. Reemplaza el
// conjunto completo de líneas (no es un patch línea a línea).
type SetRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines"`
}

// RecipeLineResponse una línea de receta en respuestas, enriquecida con el
// nombre del ingrediente para la UI.
type RecipeLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

// RecipeResponse receta de un producto. Lines vacío significa "sin receta
// definida": es un estado válido, no un error.
type RecipeResponse struct {
	ProductID string               `json:"product_id"`
	Lines     []RecipeLineResponse `json:"lines"`
	UpdatedAt time.Time            `json:"updated_at,omitempty"`
}
