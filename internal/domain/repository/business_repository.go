package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para negocios.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	List(limit, offset int) ([]*entity.Business, error)
}
