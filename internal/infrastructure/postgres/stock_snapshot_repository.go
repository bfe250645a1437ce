package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)

// StockSnapshotRepo implementación de StockSnapshotRepository sobre PostgreSQL
// (usable con pool o tx).
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador de snapshots. Pasar pool o tx (Querier).
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

func zeroSnapshot(businessID, branchID, itemType, itemID string) *entity.StockSnapshot {
	return &entity.StockSnapshot{
		BusinessID:   businessID,
		BranchID:     branchID,
		ItemType:     itemType,
		ItemID:       itemID,
		Quantity:     decimal.Zero,
		ReorderLevel: decimal.Zero,
	}
}

// Get obtiene el snapshot de un ítem en una sucursal. Si la fila no existe
// devuelve un registro en cero (create-on-write: el Upsert posterior la crea).
func (r *StockSnapshotRepo) Get(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error) {
	query := `
		SELECT business_id, branch_id, item_type, item_id, quantity, reorder_level, updated_at
		FROM stock_snapshots
		WHERE business_id = $1 AND branch_id = $2 AND item_type = $3 AND item_id = $4`
	var s entity.StockSnapshot
	err := r.q.QueryRow(context.Background(), query, businessID, branchID, itemType, itemID).Scan(
		&s.BusinessID, &s.BranchID, &s.ItemType, &s.ItemID, &s.Quantity, &s.ReorderLevel, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroSnapshot(businessID, branchID, itemType, itemID), nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el snapshot y bloquea la fila (SELECT FOR UPDATE) para
// serializar el read-modify-write por clave. Si la fila no existe todavía,
// SELECT FOR UPDATE no bloquea nada y dos primeras escrituras concurrentes
// leerían ambas el cero materializado (la segunda pisaría a la primera). Por
// eso la fila se crea en cero (ON CONFLICT DO NOTHING tolera la carrera del
// insert) y se reintenta el SELECT FOR UPDATE, que ahora sí toma el candado.
func (r *StockSnapshotRepo) GetForUpdate(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error) {
	query := `
		SELECT business_id, branch_id, item_type, item_id, quantity, reorder_level, updated_at
		FROM stock_snapshots
		WHERE business_id = $1 AND branch_id = $2 AND item_type = $3 AND item_id = $4
		FOR UPDATE`
	var s entity.StockSnapshot
	err := r.q.QueryRow(context.Background(), query, businessID, branchID, itemType, itemID).Scan(
		&s.BusinessID, &s.BranchID, &s.ItemType, &s.ItemID, &s.Quantity, &s.ReorderLevel, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO stock_snapshots (business_id, branch_id, item_type, item_id, quantity, reorder_level, updated_at)
			VALUES ($1, $2, $3, $4, 0, 0, now())
			ON CONFLICT (business_id, branch_id, item_type, item_id) DO NOTHING`
		if _, err := r.q.Exec(context.Background(), insert, businessID, branchID, itemType, itemID); err != nil {
			return nil, fmt.Errorf("materialize snapshot for update: %w", err)
		}
		err = r.q.QueryRow(context.Background(), query, businessID, branchID, itemType, itemID).Scan(
			&s.BusinessID, &s.BranchID, &s.ItemType, &s.ItemID, &s.Quantity, &s.ReorderLevel, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el snapshot (por negocio, sucursal, tipo e ítem).
func (r *StockSnapshotRepo) Upsert(snapshot *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (business_id, branch_id, item_type, item_id, quantity, reorder_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (business_id, branch_id, item_type, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reorder_level = EXCLUDED.reorder_level, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		snapshot.BusinessID, snapshot.BranchID, snapshot.ItemType, snapshot.ItemID,
		snapshot.Quantity, snapshot.ReorderLevel,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// ListByBranch lista los snapshots de una sucursal con paginación.
func (r *StockSnapshotRepo) ListByBranch(businessID, branchID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT business_id, branch_id, item_type, item_id, quantity, reorder_level, updated_at
		FROM stock_snapshots
		WHERE business_id = $1 AND branch_id = $2
		ORDER BY item_type, item_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, businessID, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.BusinessID, &s.BranchID, &s.ItemType, &s.ItemID,
			&s.Quantity, &s.ReorderLevel, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListStockRefsForIngredients devuelve (id, nombre, cantidad) de los snapshots
// de ingredientes de una sucursal, para el cálculo de disponibilidad. El nombre
// viene del catálogo y habilita el fallback legado de resolución por nombre.
func (r *StockSnapshotRepo) ListStockRefsForIngredients(ctx context.Context, businessID, branchID string) ([]repository.SnapshotStockRef, error) {
	query := `
		SELECT s.item_id, COALESCE(i.name, ''), s.quantity
		FROM stock_snapshots s
		LEFT JOIN ingredients i ON i.id = s.item_id
		WHERE s.business_id = $1 AND s.branch_id = $2 AND s.item_type = 'ingredient'`
	rows, err := r.q.Query(ctx, query, businessID, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock refs: %w", err)
	}
	defer rows.Close()
	var refs []repository.SnapshotStockRef
	for rows.Next() {
		var ref repository.SnapshotStockRef
		if err := rows.Scan(&ref.ItemID, &ref.ItemName, &ref.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// ListLowStock devuelve los ítems con cantidad en o por debajo de su nivel de
// reorden (umbral > 0), ordenados por mayor déficit primero. El nombre y la
// unidad se resuelven contra el catálogo según el tipo de ítem.
func (r *StockSnapshotRepo) ListLowStock(ctx context.Context, businessID, branchID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT s.item_type, s.item_id,
		       COALESCE(i.name, p.name, ''),
		       s.quantity, s.reorder_level,
		       COALESCE(i.unit, '')
		FROM stock_snapshots s
		LEFT JOIN ingredients i ON s.item_type = 'ingredient' AND i.id = s.item_id
		LEFT JOIN products p    ON s.item_type = 'product'    AND p.id = s.item_id
		WHERE s.business_id = $1 AND s.branch_id = $2
		  AND s.reorder_level > 0 AND s.quantity <= s.reorder_level
		ORDER BY (s.reorder_level - s.quantity) DESC`
	rows, err := r.q.Query(ctx, query, businessID, branchID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ItemType, &it.ItemID, &it.ItemName, &it.Quantity, &it.ReorderLevel, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
