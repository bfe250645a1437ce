package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// LowStockItem resultado crudo del repositorio para un ítem en o bajo reorden.
type LowStockItem struct {
	ItemType     string
	ItemID       string
	ItemName     string
	Quantity     decimal.Decimal
	ReorderLevel decimal.Decimal
	Unit         string
}

// SnapshotStockRef proyección mínima de snapshot + nombre del ítem, usada por
// el calculador de disponibilidad (el nombre habilita el fallback legado).
type SnapshotStockRef struct {
	ItemID   string
	ItemName string
	Quantity decimal.Decimal
}

// StockSnapshotRepository define el puerto para consultar/actualizar el stock
// actual por (negocio, sucursal, tipo de ítem, ítem). El snapshot solo se muta
// dentro de la transacción del ledger.
type StockSnapshotRepository interface {
	// Get devuelve el snapshot o un registro en cero si no existe (create-on-write
	// lo materializa recién en la primera transacción).
	Get(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el read-modify-write.
	GetForUpdate(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error)
	Upsert(snapshot *entity.StockSnapshot) error
	ListByBranch(businessID, branchID string, limit, offset int) ([]*entity.StockSnapshot, error)

	// ListStockRefsForIngredients devuelve las referencias de stock de los
	// ingredientes de una sucursal para el cálculo de disponibilidad.
	ListStockRefsForIngredients(ctx context.Context, businessID, branchID string) ([]SnapshotStockRef, error)

	// ListLowStock devuelve los ítems con stock en o por debajo de su nivel de
	// reorden, ordenados por mayor déficit primero.
	ListLowStock(ctx context.Context, businessID, branchID string) ([]LowStockItem, error)
}
