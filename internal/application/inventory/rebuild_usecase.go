package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// RebuildSnapshotUseCase reconstruye un snapshot reproduciendo su ledger desde
// cero. El snapshot es una vista materializada del ledger: este replay es la
// herramienta de reparación y a la vez el chequeo de consistencia.
type RebuildSnapshotUseCase struct {
	txRunner TxRunner
}

// NewRebuildSnapshotUseCase construye el caso de uso.
func NewRebuildSnapshotUseCase(txRunner TxRunner) *RebuildSnapshotUseCase {
	return &RebuildSnapshotUseCase{txRunner: txRunner}
}

// Rebuild aplica todas las entradas del ledger de la clave en orden de
// creación con el mismo fold que el registro en vivo (max(0, acumulado+delta)
// por paso) y persiste el resultado. Se ejecuta con la fila bloqueada para que
// no se pierda una transacción concurrente.
func (uc *RebuildSnapshotUseCase) Rebuild(ctx context.Context, businessID string, in dto.RebuildSnapshotRequest) (*dto.RebuildSnapshotResponse, error) {
	if !validItemType(in.ItemType) || in.BranchID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.RebuildSnapshotResponse
	err := uc.txRunner.Run(ctx, func(
		snapshotRepo repository.StockSnapshotRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error {
		snap, err := snapshotRepo.GetForUpdate(businessID, in.BranchID, in.ItemType, in.ItemID)
		if err != nil {
			return err
		}
		ledger, err := ledgerRepo.ListAllByItem(businessID, in.BranchID, in.ItemType, in.ItemID)
		if err != nil {
			return err
		}
		qty := decimal.Zero
		for _, tx := range ledger {
			qty = qty.Add(tx.Quantity)
			if qty.IsNegative() {
				qty = decimal.Zero
			}
		}
		snap.Quantity = qty
		snap.UpdatedAt = time.Now()
		if err := snapshotRepo.Upsert(snap); err != nil {
			return err
		}
		out = &dto.RebuildSnapshotResponse{
			BranchID:     in.BranchID,
			ItemType:     in.ItemType,
			ItemID:       in.ItemID,
			Quantity:     qty,
			Transactions: len(ledger),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
