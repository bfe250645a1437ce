package recipe

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta el reemplazo de receta dentro de una transacción de BD.
// El conjunto de líneas se sustituye completo (delete + insert) sin estados
// parciales visibles para los lectores.
type TxRunner interface {
	RunRecipe(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error
}
