package inventory_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

type fakeSnapshotRepo struct {
	mu    sync.Mutex
	rows  map[string]*entity.StockSnapshot
	names map[string]string // itemID -> nombre, para reportes
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{rows: map[string]*entity.StockSnapshot{}, names: map[string]string{}}
}

func snapKey(businessID, branchID, itemType, itemID string) string {
	return businessID + "|" + branchID + "|" + itemType + "|" + itemID
}

func (f *fakeSnapshotRepo) get(businessID, branchID, itemType, itemID string) *entity.StockSnapshot {
	if s, ok := f.rows[snapKey(businessID, branchID, itemType, itemID)]; ok {
		cp := *s
		return &cp
	}
	return &entity.StockSnapshot{
		BusinessID:   businessID,
		BranchID:     branchID,
		ItemType:     itemType,
		ItemID:       itemID,
		Quantity:     decimal.Zero,
		ReorderLevel: decimal.Zero,
	}
}

func (f *fakeSnapshotRepo) Get(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(businessID, branchID, itemType, itemID), nil
}

func (f *fakeSnapshotRepo) GetForUpdate(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Como el repositorio real: la fila se crea en cero si no existe, para que
	// haya algo que bloquear.
	key := snapKey(businessID, branchID, itemType, itemID)
	if _, ok := f.rows[key]; !ok {
		f.rows[key] = f.get(businessID, branchID, itemType, itemID)
	}
	return f.get(businessID, branchID, itemType, itemID), nil
}

func (f *fakeSnapshotRepo) Upsert(snapshot *entity.StockSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *snapshot
	f.rows[snapKey(snapshot.BusinessID, snapshot.BranchID, snapshot.ItemType, snapshot.ItemID)] = &cp
	return nil
}

func (f *fakeSnapshotRepo) ListByBranch(businessID, branchID string, limit, offset int) ([]*entity.StockSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockSnapshot
	for _, s := range f.rows {
		if s.BusinessID == businessID && s.BranchID == branchID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSnapshotRepo) ListStockRefsForIngredients(_ context.Context, businessID, branchID string) ([]repository.SnapshotStockRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.SnapshotStockRef
	for _, s := range f.rows {
		if s.BusinessID == businessID && s.BranchID == branchID && s.ItemType == entity.ItemTypeIngredient {
			out = append(out, repository.SnapshotStockRef{
				ItemID:   s.ItemID,
				ItemName: f.names[s.ItemID],
				Quantity: s.Quantity,
			})
		}
	}
	return out, nil
}

func (f *fakeSnapshotRepo) ListLowStock(_ context.Context, businessID, branchID string) ([]repository.LowStockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.LowStockItem
	for _, s := range f.rows {
		if s.BusinessID == businessID && s.BranchID == branchID && s.IsLowStock() {
			out = append(out, repository.LowStockItem{
				ItemType:     s.ItemType,
				ItemID:       s.ItemID,
				ItemName:     f.names[s.ItemID],
				Quantity:     s.Quantity,
				ReorderLevel: s.ReorderLevel,
			})
		}
	}
	// Mayor déficit primero, como el repositorio real.
	sort.Slice(out, func(i, j int) bool {
		di := out[i].ReorderLevel.Sub(out[i].Quantity)
		dj := out[j].ReorderLevel.Sub(out[j].Quantity)
		return di.GreaterThan(dj)
	})
	return out, nil
}

type fakeLedgerRepo struct {
	mu   sync.Mutex
	rows []*entity.StockTransaction
}

func (f *fakeLedgerRepo) Create(tx *entity.StockTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *tx
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeLedgerRepo) GetByID(id string) (*entity.StockTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tx := range f.rows {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) ListByItem(businessID, branchID, itemType, itemID string, _, _ *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	all, _ := f.ListAllByItem(businessID, branchID, itemType, itemID)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeLedgerRepo) ListByBranch(businessID, branchID string, _, _ *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockTransaction
	for _, tx := range f.rows {
		if tx.BusinessID == businessID && tx.BranchID == branchID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListAllByItem(businessID, branchID, itemType, itemID string) ([]*entity.StockTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockTransaction
	for _, tx := range f.rows {
		if tx.BusinessID == businessID && tx.BranchID == branchID && tx.ItemType == itemType && tx.ItemID == itemID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner serializa las transacciones con un mutex, emulando el bloqueo
// de fila de la implementación PostgreSQL.
type fakeTxRunner struct {
	mu       sync.Mutex
	snapshot *fakeSnapshotRepo
	ledger   *fakeLedgerRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	snapshotRepo repository.StockSnapshotRepository,
	ledgerRepo repository.StockTransactionRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.snapshot, f.ledger)
}

// rowLockTxRunner emula el candado de fila de PostgreSQL sin serializar la
// transacción completa: GetForUpdate toma el mutex de su clave (la fila se
// materializa en cero si no existe) y lo suelta al terminar la transacción.
// Permite ejercitar escrituras concurrentes sobre una clave aún sin snapshot.
type rowLockTxRunner struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	snapshot *fakeSnapshotRepo
	ledger   *fakeLedgerRepo
}

func (r *rowLockTxRunner) lockFor(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks == nil {
		r.locks = map[string]*sync.Mutex{}
	}
	mu, ok := r.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[key] = mu
	}
	return mu
}

func (r *rowLockTxRunner) Run(_ context.Context, fn func(
	snapshotRepo repository.StockSnapshotRepository,
	ledgerRepo repository.StockTransactionRepository,
) error) error {
	tx := &rowLockSnapshotRepo{fakeSnapshotRepo: r.snapshot, runner: r}
	defer tx.releaseAll()
	return fn(tx, r.ledger)
}

// rowLockSnapshotRepo envuelve al fake de snapshots tomando el candado de la
// clave en GetForUpdate; el runner lo libera al cerrar la transacción.
type rowLockSnapshotRepo struct {
	*fakeSnapshotRepo
	runner *rowLockTxRunner
	held   []*sync.Mutex
}

func (t *rowLockSnapshotRepo) GetForUpdate(businessID, branchID, itemType, itemID string) (*entity.StockSnapshot, error) {
	mu := t.runner.lockFor(snapKey(businessID, branchID, itemType, itemID))
	mu.Lock()
	t.held = append(t.held, mu)
	return t.fakeSnapshotRepo.GetForUpdate(businessID, branchID, itemType, itemID)
}

func (t *rowLockSnapshotRepo) releaseAll() {
	for _, mu := range t.held {
		mu.Unlock()
	}
	t.held = nil
}

type fakeIngredientRepo struct {
	rows map[string]*entity.Ingredient
}

func (f *fakeIngredientRepo) Create(i *entity.Ingredient) error { f.rows[i.ID] = i; return nil }
func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.rows[id], nil
}
func (f *fakeIngredientRepo) GetByBusinessAndName(string, string) (*entity.Ingredient, error) {
	return nil, nil
}
func (f *fakeIngredientRepo) ListByBusiness(string, int, int) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (f *fakeIngredientRepo) Update(i *entity.Ingredient) error { f.rows[i.ID] = i; return nil }

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error              { f.rows[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error)  { return f.rows[id], nil }
func (f *fakeProductRepo) GetByBusinessAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByBusiness(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.rows[p.ID] = p; return nil }

type fakeBranchRepo struct {
	rows map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error             { f.rows[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.rows[id], nil }
func (f *fakeBranchRepo) ListByBusiness(string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID    = "biz-1"
	branchID = "branch-1"
	flourID  = "ing-harina"
	userID   = "user-1"
)

type fixture struct {
	snapshots *fakeSnapshotRepo
	ledger    *fakeLedgerRepo
	runner    *fakeTxRunner
	record    *inventory.RecordTransactionUseCase
	snapshot  *inventory.SnapshotUseCase
	rebuild   *inventory.RebuildSnapshotUseCase
}

func newFixture() *fixture {
	snapshots := newFakeSnapshotRepo()
	snapshots.names[flourID] = "Harina"
	ledger := &fakeLedgerRepo{}
	runner := &fakeTxRunner{snapshot: snapshots, ledger: ledger}
	ingredients := &fakeIngredientRepo{rows: map[string]*entity.Ingredient{
		flourID: {ID: flourID, BusinessID: bizID, Name: "Harina", Unit: "kg", Active: true},
	}}
	products := &fakeProductRepo{rows: map[string]*entity.Product{}}
	branches := &fakeBranchRepo{rows: map[string]*entity.Branch{
		branchID: {ID: branchID, BusinessID: bizID, Name: "Centro"},
	}}
	return &fixture{
		snapshots: snapshots,
		ledger:    ledger,
		runner:    runner,
		record:    inventory.NewRecordTransactionUseCase(runner, ingredients, products, branches),
		snapshot:  inventory.NewSnapshotUseCase(runner, snapshots, ledger),
		rebuild:   inventory.NewRebuildSnapshotUseCase(runner),
	}
}

func (f *fixture) recordDelta(t *testing.T, qty, refType string) *entity.StockTransaction {
	t.Helper()
	tx, err := f.record.Record(context.Background(), inventory.TransactionInputDTO{
		BusinessID:    bizID,
		BranchID:      branchID,
		ItemType:      entity.ItemTypeIngredient,
		ItemID:        flourID,
		Quantity:      d(qty),
		ReferenceType: refType,
		UserID:        userID,
	})
	require.NoError(t, err)
	return tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordTransaction
// ──────────────────────────────────────────────────────────────────────────────

// Primera transacción sobre un ítem sin snapshot: se materializa en cero y se
// aplica el delta (create-on-write).
func TestRecord_CreateOnWrite(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "10", entity.ReferencePurchase)

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(d("10")), "esperaba 10, obtuve %s", snap.Quantity)
}

// Deducción mayor al stock: el snapshot se recorta en cero pero el ledger
// conserva el delta solicitado completo (la discrepancia queda auditable).
func TestRecord_ClampEnCero_LedgerConservaDelta(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "10", entity.ReferencePurchase)
	tx := f.recordDelta(t, "-50", entity.ReferenceSale)

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.IsZero(), "el stock debe recortarse en cero, obtuve %s", snap.Quantity)

	assert.True(t, tx.Quantity.Equal(d("-50")),
		"el ledger debe registrar el delta solicitado sin recortar")

	entries, err := f.ledger.ListAllByItem(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Quantity.Equal(d("-50")))
}

// Después del clamp, el stock vuelve a crecer desde cero, no desde el negativo.
func TestRecord_ReposicionDespuesDeClamp(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "10", entity.ReferencePurchase)
	f.recordDelta(t, "-50", entity.ReferenceSale)
	f.recordDelta(t, "5", entity.ReferencePurchase)

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(d("5")), "esperaba 5, obtuve %s", snap.Quantity)
}

// Transacciones concurrentes se serializan por el bloqueo de fila: ninguna
// actualización se pierde y el resultado es el mismo en cualquier orden.
func TestRecord_ConcurrenciaSinPerdidas(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "10", entity.ReferencePurchase)

	var wg sync.WaitGroup
	deltas := []string{"5", "-3"}
	for _, q := range deltas {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			_, err := f.record.Record(context.Background(), inventory.TransactionInputDTO{
				BusinessID:    bizID,
				BranchID:      branchID,
				ItemType:      entity.ItemTypeIngredient,
				ItemID:        flourID,
				Quantity:      d(q),
				ReferenceType: entity.ReferenceAdjustment,
				UserID:        userID,
			})
			assert.NoError(t, err)
		}(q)
	}
	wg.Wait()

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(d("12")),
		"10 + 5 - 3 debe dar 12 sin importar el orden, obtuve %s", snap.Quantity)
}

// Primeras escrituras concurrentes sobre un ítem sin snapshot previo: antes de
// materializar la fila en cero dentro de GetForUpdate, ninguna transacción
// tenía fila que bloquear, ambas leían cero y la segunda pisaba a la primera.
// Con la fila creada y bloqueada, ningún delta se pierde aunque las
// transacciones no se serialicen globalmente.
func TestRecord_PrimerasEscriturasConcurrentes_SinPerdida(t *testing.T) {
	snapshots := newFakeSnapshotRepo()
	ledger := &fakeLedgerRepo{}
	runner := &rowLockTxRunner{snapshot: snapshots, ledger: ledger}
	ingredients := &fakeIngredientRepo{rows: map[string]*entity.Ingredient{
		flourID: {ID: flourID, BusinessID: bizID, Name: "Harina", Unit: "kg", Active: true},
	}}
	branches := &fakeBranchRepo{rows: map[string]*entity.Branch{
		branchID: {ID: branchID, BusinessID: bizID, Name: "Centro"},
	}}
	record := inventory.NewRecordTransactionUseCase(runner, ingredients, &fakeProductRepo{rows: map[string]*entity.Product{}}, branches)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := record.Record(context.Background(), inventory.TransactionInputDTO{
				BusinessID:    bizID,
				BranchID:      branchID,
				ItemType:      entity.ItemTypeIngredient,
				ItemID:        flourID,
				Quantity:      d("1"),
				ReferenceType: entity.ReferencePurchase,
				UserID:        userID,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := snapshots.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(d("8")),
		"8 compras de 1 desde cero deben dar 8, obtuve %s", snap.Quantity)

	entries, err := ledger.ListAllByItem(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.Len(t, entries, writers, "el snapshot debe seguir siendo el fold del ledger")
}

func TestRecord_Validaciones(t *testing.T) {
	f := newFixture()

	// Delta cero no tiene sentido en el ledger.
	_, err := f.record.Record(context.Background(), inventory.TransactionInputDTO{
		BusinessID: bizID, BranchID: branchID,
		ItemType: entity.ItemTypeIngredient, ItemID: flourID,
		Quantity: decimal.Zero, ReferenceType: entity.ReferencePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity cero debe rechazarse")

	// Tipo de referencia desconocido.
	_, err = f.record.Record(context.Background(), inventory.TransactionInputDTO{
		BusinessID: bizID, BranchID: branchID,
		ItemType: entity.ItemTypeIngredient, ItemID: flourID,
		Quantity: d("1"), ReferenceType: "robo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reference_type desconocido debe rechazarse")

	// Ítem inexistente en el catálogo.
	_, err = f.record.Record(context.Background(), inventory.TransactionInputDTO{
		BusinessID: bizID, BranchID: branchID,
		ItemType: entity.ItemTypeIngredient, ItemID: "ing-fantasma",
		Quantity: d("1"), ReferenceType: entity.ReferencePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	// Tipo de ítem inválido.
	_, err = f.record.Record(context.Background(), inventory.TransactionInputDTO{
		BusinessID: bizID, BranchID: branchID,
		ItemType: "combo", ItemID: flourID,
		Quantity: d("1"), ReferenceType: entity.ReferencePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada debe haber llegado al ledger.
	entries, err := f.ledger.ListAllByItem(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.Empty(t, entries, "las transacciones rechazadas no deben dejar rastro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Snapshot: lectura, reorden y reporte
// ──────────────────────────────────────────────────────────────────────────────

// Consultar un ítem que nunca tuvo movimientos devuelve un snapshot en cero,
// no un error.
func TestSnapshot_SinMovimientos_DevuelveCero(t *testing.T) {
	f := newFixture()
	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.IsZero())
	assert.False(t, snap.LowStock, "sin umbral configurado no se marca stock bajo")
}

func TestSnapshot_SetReorderLevel_MarcaLowStock(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "3", entity.ReferencePurchase)

	err := f.snapshot.SetReorderLevel(context.Background(), bizID, dto.SetReorderLevelRequest{
		BranchID:     branchID,
		ItemType:     entity.ItemTypeIngredient,
		ItemID:       flourID,
		ReorderLevel: d("5"),
	})
	require.NoError(t, err)

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.LowStock, "3 <= 5 debe marcar stock bajo")

	// El umbral no pisa la cantidad acumulada.
	assert.True(t, snap.Quantity.Equal(d("3")))
}

func TestSnapshot_SetReorderLevel_NegativoRechazado(t *testing.T) {
	f := newFixture()
	err := f.snapshot.SetReorderLevel(context.Background(), bizID, dto.SetReorderLevelRequest{
		BranchID:     branchID,
		ItemType:     entity.ItemTypeIngredient,
		ItemID:       flourID,
		ReorderLevel: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSnapshot_LowStockReport_SugiereCantidad(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "2", entity.ReferencePurchase)
	require.NoError(t, f.snapshot.SetReorderLevel(context.Background(), bizID, dto.SetReorderLevelRequest{
		BranchID: branchID, ItemType: entity.ItemTypeIngredient, ItemID: flourID, ReorderLevel: d("10"),
	}))

	report, err := f.snapshot.LowStockReport(context.Background(), bizID, branchID)
	require.NoError(t, err)
	require.Len(t, report, 1)

	item := report[0]
	assert.Equal(t, flourID, item.ItemID)
	assert.Equal(t, "Harina", item.ItemName)
	assert.Equal(t, 1, item.Priority)
	// Sugerido = reorden * 1.5 - actual = 15 - 2 = 13.
	assert.True(t, item.SuggestedOrderQty.Equal(d("13")),
		"esperaba sugerido 13, obtuve %s", item.SuggestedOrderQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Rebuild: snapshot = fold del ledger
// ──────────────────────────────────────────────────────────────────────────────

// El rebuild reproduce el mismo fold por paso que el registro en vivo, clamp
// incluido: +10, -50, +5 debe dar 5 (no 0 ni -35).
func TestRebuild_ReproduceFoldConClamp(t *testing.T) {
	f := newFixture()
	f.recordDelta(t, "10", entity.ReferencePurchase)
	f.recordDelta(t, "-50", entity.ReferenceSale)
	f.recordDelta(t, "5", entity.ReferencePurchase)

	// Corromper el snapshot a propósito para comprobar la reparación.
	require.NoError(t, f.snapshots.Upsert(&entity.StockSnapshot{
		BusinessID: bizID, BranchID: branchID,
		ItemType: entity.ItemTypeIngredient, ItemID: flourID,
		Quantity: d("999"),
	}))

	out, err := f.rebuild.Rebuild(context.Background(), bizID, dto.RebuildSnapshotRequest{
		BranchID: branchID,
		ItemType: entity.ItemTypeIngredient,
		ItemID:   flourID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Transactions)
	assert.True(t, out.Quantity.Equal(d("5")),
		"el fold por paso con clamp debe dar 5, obtuve %s", out.Quantity)

	snap, err := f.snapshot.Get(bizID, branchID, entity.ItemTypeIngredient, flourID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(d("5")), "el snapshot debe quedar reparado")
}

// Rebuild de un ítem sin ledger deja el snapshot en cero.
func TestRebuild_SinLedger_Cero(t *testing.T) {
	f := newFixture()
	out, err := f.rebuild.Rebuild(context.Background(), bizID, dto.RebuildSnapshotRequest{
		BranchID: branchID,
		ItemType: entity.ItemTypeIngredient,
		ItemID:   flourID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Transactions)
	assert.True(t, out.Quantity.IsZero())
}

func TestRebuild_ItemTypeInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.rebuild.Rebuild(context.Background(), bizID, dto.RebuildSnapshotRequest{
		BranchID: branchID,
		ItemType: "combo",
		ItemID:   flourID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
