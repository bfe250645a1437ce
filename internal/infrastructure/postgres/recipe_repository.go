package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL. Las líneas
// viven en recipe_lines (product_id, ingredient_id, quantity, unit); Replace
// debe ejecutarse dentro de una transacción (vía recipe.TxRunner).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Get devuelve la receta del producto o nil si no tiene líneas ("sin receta
// definida" es un estado válido, no un error).
func (r *RecipeRepo) Get(productID string) (*entity.Recipe, error) {
	query := `
		SELECT product_id, business_id, ingredient_id, quantity, unit, updated_at
		FROM recipe_lines WHERE product_id = $1
		ORDER BY ingredient_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()

	var recipe *entity.Recipe
	for rows.Next() {
		var line entity.RecipeLine
		var pid, businessID string
		var updatedAt time.Time
		if err := rows.Scan(&pid, &businessID, &line.IngredientID, &line.Quantity, &line.Unit, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		if recipe == nil {
			recipe = &entity.Recipe{ProductID: pid, BusinessID: businessID, UpdatedAt: updatedAt}
		}
		recipe.Lines = append(recipe.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Replace sustituye el conjunto completo de líneas del producto: borra las
// existentes e inserta las nuevas. Sin transacción alrededor habría estados
// parciales visibles; por eso solo se invoca desde el TxRunner.
func (r *RecipeRepo) Replace(recipe *entity.Recipe) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM recipe_lines WHERE product_id = $1`, recipe.ProductID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	for _, line := range recipe.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO recipe_lines (product_id, business_id, ingredient_id, quantity, unit, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			recipe.ProductID, recipe.BusinessID, line.IngredientID, line.Quantity, line.Unit, recipe.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// Delete elimina todas las líneas de la receta del producto.
func (r *RecipeRepo) Delete(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipe_lines WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
