package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// IngredientRepository define el puerto de persistencia para ingredientes.
// No hay Delete: los ingredientes referenciados por recetas solo se desactivan.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
}
