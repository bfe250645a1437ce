package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// SnapshotUseCase consultas de stock y configuración del nivel de reorden.
// Las cantidades nunca se mutan por acá: eso es exclusivo del ledger.
type SnapshotUseCase struct {
	txRunner     TxRunner
	snapshotRepo repository.StockSnapshotRepository
	ledgerRepo   repository.StockTransactionRepository
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(
	txRunner TxRunner,
	snapshotRepo repository.StockSnapshotRepository,
	ledgerRepo repository.StockTransactionRepository,
) *SnapshotUseCase {
	return &SnapshotUseCase{txRunner: txRunner, snapshotRepo: snapshotRepo, ledgerRepo: ledgerRepo}
}

// Get devuelve el snapshot de un ítem (registro en cero si nunca tuvo stock).
func (uc *SnapshotUseCase) Get(businessID, branchID, itemType, itemID string) (*dto.SnapshotResponse, error) {
	if !validItemType(itemType) {
		return nil, domain.ErrInvalidInput
	}
	snap, err := uc.snapshotRepo.Get(businessID, branchID, itemType, itemID)
	if err != nil {
		return nil, err
	}
	return toSnapshotResponse(snap), nil
}

// ListByBranch lista los snapshots de una sucursal con paginación.
func (uc *SnapshotUseCase) ListByBranch(businessID, branchID string, limit, offset int) (*dto.SnapshotListResponse, error) {
	list, err := uc.snapshotRepo.ListByBranch(businessID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SnapshotResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSnapshotResponse(s))
	}
	return &dto.SnapshotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// SetReorderLevel fija el umbral de reorden de un ítem. Se hace dentro de la
// transacción con bloqueo de fila para no pisar una cantidad concurrente.
func (uc *SnapshotUseCase) SetReorderLevel(ctx context.Context, businessID string, in dto.SetReorderLevelRequest) error {
	if !validItemType(in.ItemType) || in.ReorderLevel.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		snapshotRepo repository.StockSnapshotRepository,
		_ repository.StockTransactionRepository,
	) error {
		snap, err := snapshotRepo.GetForUpdate(businessID, in.BranchID, in.ItemType, in.ItemID)
		if err != nil {
			return err
		}
		snap.ReorderLevel = in.ReorderLevel
		snap.UpdatedAt = time.Now()
		return snapshotRepo.Upsert(snap)
	})
}

// ListTransactions lista el ledger de un ítem en un rango de fechas.
func (uc *SnapshotUseCase) ListTransactions(businessID, branchID, itemType, itemID string, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.ledgerRepo.ListByItem(businessID, branchID, itemType, itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:            t.ID,
			BranchID:      t.BranchID,
			ItemType:      t.ItemType,
			ItemID:        t.ItemID,
			Quantity:      t.Quantity,
			ReferenceType: t.ReferenceType,
			ReferenceID:   t.ReferenceID,
			Note:          t.Note,
			CreatedAt:     t.CreatedAt,
			CreatedBy:     t.CreatedBy,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LowStockReport devuelve los ítems en o bajo su nivel de reorden con cantidad
// sugerida de pedido (reorden * 1.5 - actual), ordenados por mayor déficit.
func (uc *SnapshotUseCase) LowStockReport(ctx context.Context, businessID, branchID string) ([]dto.LowStockItemDTO, error) {
	raw, err := uc.snapshotRepo.ListLowStock(ctx, businessID, branchID)
	if err != nil {
		return nil, err
	}
	report := make([]dto.LowStockItemDTO, 0, len(raw))
	for i, item := range raw {
		ideal := item.ReorderLevel.Mul(decimal.NewFromFloat(1.5))
		suggested := ideal.Sub(item.Quantity)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		report = append(report, dto.LowStockItemDTO{
			ItemType:          item.ItemType,
			ItemID:            item.ItemID,
			ItemName:          item.ItemName,
			Unit:              item.Unit,
			Quantity:          item.Quantity,
			ReorderLevel:      item.ReorderLevel,
			SuggestedOrderQty: suggested,
			Priority:          i + 1,
		})
	}
	return report, nil
}

func validItemType(t string) bool {
	return t == entity.ItemTypeIngredient || t == entity.ItemTypeProduct
}

func toSnapshotResponse(s *entity.StockSnapshot) *dto.SnapshotResponse {
	if s == nil {
		return nil
	}
	return &dto.SnapshotResponse{
		BranchID:     s.BranchID,
		ItemType:     s.ItemType,
		ItemID:       s.ItemID,
		Quantity:     s.Quantity,
		ReorderLevel: s.ReorderLevel,
		LowStock:     s.IsLowStock(),
		UpdatedAt:    s.UpdatedAt,
	}
}
