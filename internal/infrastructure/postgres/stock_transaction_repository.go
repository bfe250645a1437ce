package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Solo INSERT y SELECT: el ledger es append-only.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const txColumns = `id, business_id, branch_id, item_type, item_id, quantity, reference_type, reference_id, note, created_at, created_by`

// Create persiste una entrada del ledger.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	referenceID := (*string)(nil)
	if tx.ReferenceID != "" {
		referenceID = &tx.ReferenceID
	}
	createdBy := (*string)(nil)
	if tx.CreatedBy != "" {
		createdBy = &tx.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.BusinessID, tx.BranchID, tx.ItemType, tx.ItemID,
		tx.Quantity, tx.ReferenceType, referenceID, tx.Note, tx.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var referenceID, createdBy *string
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.BranchID, &t.ItemType, &t.ItemID,
		&t.Quantity, &t.ReferenceType, &referenceID, &t.Note, &t.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if referenceID != nil {
		t.ReferenceID = *referenceID
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

// GetByID obtiene una entrada del ledger por ID.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM stock_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return t, nil
}

// ListByItem lista el ledger de una clave en un rango de fechas, más reciente primero.
func (r *StockTransactionRepo) ListByItem(businessID, branchID, itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM stock_transactions
		WHERE business_id = $1 AND branch_id = $2 AND item_type = $3 AND item_id = $4`
	args := []any{businessID, branchID, itemType, itemID}
	pos := 5
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListByBranch lista el ledger completo de una sucursal en un rango de fechas.
func (r *StockTransactionRepo) ListByBranch(businessID, branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM stock_transactions
		WHERE business_id = $1 AND branch_id = $2`
	args := []any{businessID, branchID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListAllByItem devuelve el ledger completo de una clave en orden de creación
// ascendente, para reconstruir el snapshot reproduciéndolo desde cero.
func (r *StockTransactionRepo) ListAllByItem(businessID, branchID, itemType, itemID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM stock_transactions
		WHERE business_id = $1 AND branch_id = $2 AND item_type = $3 AND item_id = $4
		ORDER BY created_at ASC, id ASC`
	return r.list(query, businessID, branchID, itemType, itemID)
}

func (r *StockTransactionRepo) list(query string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
