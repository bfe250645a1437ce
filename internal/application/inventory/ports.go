package inventory

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del snapshot y
// el append al ledger se confirmen juntos o ninguno (la única falla que
// rompería el invariante snapshot = fold del ledger).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		snapshotRepo repository.StockSnapshotRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error) error
}
