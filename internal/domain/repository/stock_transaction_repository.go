package repository

import (
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// StockTransactionRepository define el puerto de persistencia para el ledger
// de inventario. Append-only: no hay Update ni Delete.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	ListByItem(businessID, branchID, itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	ListByBranch(businessID, branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	// ListAllByItem devuelve el ledger completo de una clave en orden de
	// creación, para reconstruir el snapshot reproduciéndolo desde cero.
	ListAllByItem(businessID, branchID, itemType, itemID string) ([]*entity.StockTransaction, error)
}
