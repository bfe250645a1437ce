package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/inventory/transactions.
// Quantity es el delta solicitado con signo: positivo agrega stock, negativo
// consume. ReferenceID permite al caller deduplicar reintentos (ej. un asiento
// por línea de orden).
type RecordTransactionRequest struct {
	BranchID      string          `json:"branch_id"`
	ItemType      string          `json:"item_type"` // ingredient | product
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type"` // purchase | sale | waste | adjustment | production
	ReferenceID   string          `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// TransactionResponse una entrada del ledger en respuestas.
type TransactionResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	ItemType      string          `json:"item_type"`
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// TransactionListResponse listado paginado del ledger.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SnapshotResponse stock actual de un ítem en una sucursal. LowStock se marca
// cuando la cantidad está en o por debajo del nivel de reorden (con umbral > 0).
type SnapshotResponse struct {
	BranchID     string          `json:"branch_id"`
	ItemType     string          `json:"item_type"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// SnapshotListResponse listado paginado de snapshots.
type SnapshotListResponse struct {
	Items []SnapshotResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SetReorderLevelRequest body para PUT /api/inventory/snapshots/reorder-level.
type SetReorderLevelRequest struct {
	BranchID     string          `json:"branch_id"`
	ItemType     string          `json:"item_type"`
	ItemID       string          `json:"item_id"`
	ReorderLevel decimal.Decimal `json:"reorder_level"` // >= 0
}

// LowStockItemDTO un ítem en o bajo su nivel de reorden, con cantidad sugerida
// de pedido para atención del gerente (se marca, no se bloquea).
type LowStockItemDTO struct {
	ItemType          string          `json:"item_type"`
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Unit              string          `json:"unit,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
	Priority          int             `json:"priority"` // 1 = más urgente
}

// RebuildSnapshotRequest body para POST /api/inventory/snapshots/rebuild.
type RebuildSnapshotRequest struct {
	BranchID string `json:"branch_id"`
	ItemType string `json:"item_type"`
	ItemID   string `json:"item_id"`
}

// RebuildSnapshotResponse resultado de reconstruir un snapshot desde el ledger.
type RebuildSnapshotResponse struct {
	BranchID     string          `json:"branch_id"`
	ItemType     string          `json:"item_type"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Transactions int             `json:"transactions"` // entradas del ledger aplicadas
}
