package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas (BOM).
// Replace sustituye el conjunto completo de líneas; debe ejecutarse dentro de
// una transacción (vía recipe.TxRunner) para que el reemplazo sea atómico y
// no haya estados parciales visibles.
type RecipeRepository interface {
	Get(productID string) (*entity.Recipe, error)
	Replace(recipe *entity.Recipe) error
	Delete(productID string) error
}
