package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías del menú.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Category, error)
}
