package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and recipe.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ recipe.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de snapshot y ledger
// atados a la tx y hace Commit o Rollback. La actualización del snapshot y el
// append al ledger quedan en la misma unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	snapshotRepo repository.StockSnapshotRepository,
	ledgerRepo repository.StockTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	snapshotRepo := NewStockSnapshotRepository(tx)
	ledgerRepo := NewStockTransactionRepository(tx)

	if err := fn(snapshotRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecipe inicia una transacción con el repo de recetas (para el reemplazo
// atómico delete + insert del conjunto de líneas).
func (r *TxRunner) RunRecipe(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRecipeRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
