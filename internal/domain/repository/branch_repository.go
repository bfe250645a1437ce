package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Branch, error)
}
