package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL
// (usable con pool o tx). Sin DELETE: los ingredientes solo se desactivan.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, business_id, name, unit, cost_per_unit, sku, active, created_at, updated_at`

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.BusinessID, ingredient.Name, ingredient.Unit,
		ingredient.CostPerUnit, ingredient.SKU, ingredient.Active,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.BusinessID, &i.Name, &i.Unit, &i.CostPerUnit, &i.SKU,
		&i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

// GetByBusinessAndName obtiene un ingrediente por negocio y nombre (para la
// validación de nombre único).
func (r *IngredientRepo) GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE business_id = $1 AND lower(name) = lower($2)`
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, businessID, name).Scan(
		&i.ID, &i.BusinessID, &i.Name, &i.Unit, &i.CostPerUnit, &i.SKU,
		&i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient by name: %w", err)
	}
	return &i, nil
}

// ListByBusiness lista ingredientes por negocio con paginación.
func (r *IngredientRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Ingredient, error) {
	query := `
		SELECT ` + ingredientColumns + `
		FROM ingredients WHERE business_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.BusinessID, &i.Name, &i.Unit, &i.CostPerUnit,
			&i.SKU, &i.Active, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza costo, SKU y estado activo. Nombre y unidad son inmutables
// (las recetas y el ledger dependen de ellos).
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients SET cost_per_unit = $2, sku = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.CostPerUnit, ingredient.SKU, ingredient.Active, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}
