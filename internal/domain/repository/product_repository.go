package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos del menú.
// Sin Delete por la misma regla que IngredientRepository.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBusinessAndName(businessID, name string) (*entity.Product, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
