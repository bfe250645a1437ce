package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// RecordTransactionUseCase registra transacciones de stock de forma
// transaccional: bloqueo de fila del snapshot (SELECT FOR UPDATE), clamp en
// cero y append al ledger en la misma transacción.
type RecordTransactionUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	productRepo    repository.ProductRepository
	branchRepo     repository.BranchRepository
}

// NewRecordTransactionUseCase construye el caso de uso.
func NewRecordTransactionUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		productRepo:    productRepo,
		branchRepo:     branchRepo,
	}
}

// TransactionInputDTO entrada para registrar una transacción de stock.
// Quantity es el delta solicitado con signo; ReferenceID es el mecanismo de
// deduplicación del caller (ej. id de línea de orden) porque la operación no
// es idempotente por sí sola.
type TransactionInputDTO struct {
	BusinessID    string
	BranchID      string
	ItemType      string
	ItemID        string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Note          string
	UserID        string
}

// Record valida el ítem contra el catálogo, abre la transacción, bloquea la
// fila del snapshot (creándolo en cero si no existe), aplica
// newQty = max(0, actual + delta) y agrega la entrada inmutable al ledger con
// el delta *solicitado* sin recortar.
//
// Política de clamp: una deducción mayor al stock disponible se aplica como
// "consumir hasta cero" en lugar de rechazarse; la sobreventa queda visible
// como discrepancia en el ledger y como disponibilidad cero, sin bloquear el
// flujo que la originó. Esta operación nunca falla por stock insuficiente.
func (uc *RecordTransactionUseCase) Record(ctx context.Context, input TransactionInputDTO) (*entity.StockTransaction, error) {
	if input.BranchID == "" || input.ItemID == "" || input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidReferenceType(input.ReferenceType) {
		return nil, domain.ErrInvalidInput
	}

	// Resolver el ítem en el catálogo según su tipo.
	switch input.ItemType {
	case entity.ItemTypeIngredient:
		ing, err := uc.ingredientRepo.GetByID(input.ItemID)
		if err != nil {
			return nil, err
		}
		if ing == nil || ing.BusinessID != input.BusinessID {
			return nil, domain.ErrUnknownItem
		}
	case entity.ItemTypeProduct:
		prod, err := uc.productRepo.GetByID(input.ItemID)
		if err != nil {
			return nil, err
		}
		if prod == nil || prod.BusinessID != input.BusinessID {
			return nil, domain.ErrUnknownItem
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	branch, err := uc.branchRepo.GetByID(input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != input.BusinessID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	tx := &entity.StockTransaction{
		ID:            uuid.New().String(),
		BusinessID:    input.BusinessID,
		BranchID:      input.BranchID,
		ItemType:      input.ItemType,
		ItemID:        input.ItemID,
		Quantity:      input.Quantity,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Note:          input.Note,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(
		snapshotRepo repository.StockSnapshotRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error {
		// Bloquea la fila del snapshot; si no existe, el repositorio la crea
		// en cero y la bloquea (create-on-write), de modo que también las
		// primeras escrituras concurrentes sobre una clave se serializan.
		snap, err := snapshotRepo.GetForUpdate(input.BusinessID, input.BranchID, input.ItemType, input.ItemID)
		if err != nil {
			return err
		}
		newQty := snap.Quantity.Add(input.Quantity)
		if newQty.IsNegative() {
			newQty = decimal.Zero
		}
		snap.Quantity = newQty
		snap.UpdatedAt = now
		if err := snapshotRepo.Upsert(snap); err != nil {
			return err
		}
		// El ledger guarda el delta solicitado, no el efecto recortado.
		return ledgerRepo.Create(tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
