package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// InventoryHandler maneja el ledger de stock, snapshots y reportes (protegido).
type InventoryHandler struct {
	record   *inventory.RecordTransactionUseCase
	snapshot *inventory.SnapshotUseCase
	rebuild  *inventory.RebuildSnapshotUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	record *inventory.RecordTransactionUseCase,
	snapshot *inventory.SnapshotUseCase,
	rebuild *inventory.RebuildSnapshotUseCase,
) *InventoryHandler {
	return &InventoryHandler{record: record, snapshot: snapshot, rebuild: rebuild}
}

// RecordTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  Aplica el delta al snapshot con clamp en cero y agrega la entrada
//
//	inmutable al ledger con el delta solicitado. Nunca falla por stock
//	insuficiente: una deducción excesiva consume hasta cero.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "branch_id, item_type, item_id, quantity, reference_type"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	userID := GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.record.Record(c.Context(), inventory.TransactionInputDTO{
		BusinessID:    businessID,
		BranchID:      in.BranchID,
		ItemType:      in.ItemType,
		ItemID:        in.ItemID,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Note:          in.Note,
		UserID:        userID,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id, item_type, item_id, quantity != 0 y reference_type válido son requeridos"})
		}
		if err == domain.ErrUnknownItem {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ITEM", Message: "el ítem no existe en el catálogo"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{
		ID:            tx.ID,
		BranchID:      tx.BranchID,
		ItemType:      tx.ItemType,
		ItemID:        tx.ItemID,
		Quantity:      tx.Quantity,
		ReferenceType: tx.ReferenceType,
		ReferenceID:   tx.ReferenceID,
		Note:          tx.Note,
		CreatedAt:     tx.CreatedAt,
		CreatedBy:     tx.CreatedBy,
	})
}

// GetSnapshot godoc
// @Summary      Stock actual de un ítem
// @Description  Un ítem que nunca tuvo movimientos responde un snapshot en cero, no 404.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true  "ID de la sucursal"
// @Param        item_type  path   string  true  "ingredient | product"
// @Param        item_id    path   string  true  "ID del ítem"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/snapshots/{item_type}/{item_id} [get]
func (h *InventoryHandler) GetSnapshot(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	out, err := h.snapshot.Get(businessID, branchID, c.Params("item_type"), c.Params("item_id"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_type debe ser ingredient o product"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSnapshots godoc
// @Summary      Listar snapshots de una sucursal
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true   "ID de la sucursal"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SnapshotListResponse
// @Router       /api/inventory/snapshots [get]
func (h *InventoryHandler) ListSnapshots(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.snapshot.ListByBranch(businessID, branchID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetReorderLevel godoc
// @Summary      Fijar nivel de reorden de un ítem
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetReorderLevelRequest  true  "branch_id, item_type, item_id, reorder_level >= 0"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder-level [put]
func (h *InventoryHandler) SetReorderLevel(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.SetReorderLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.snapshot.SetReorderLevel(c.Context(), businessID, in); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_type válido y reorder_level >= 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTransactions godoc
// @Summary      Historial del ledger de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true   "ID de la sucursal"
// @Param        item_type  query  string  true   "ingredient | product"
// @Param        item_id    query  string  true   "ID del ítem"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	itemType := c.Query("item_type")
	itemID := c.Query("item_id")
	if branchID == "" || itemType == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id, item_type e item_id son requeridos"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	limit, offset := pageParams(c)
	out, err := h.snapshot.ListTransactions(businessID, branchID, itemType, itemID, from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte de stock bajo
// @Description  Ítems en o bajo su nivel de reorden, ordenados por déficit, con
//
//	cantidad sugerida de pedido.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true  "ID de la sucursal"
// @Success      200  {array}  dto.LowStockItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStockReport(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	out, err := h.snapshot.LowStockReport(c.Context(), businessID, branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RebuildSnapshot godoc
// @Summary      Reconstruir snapshot desde el ledger
// @Description  Reproduce todas las entradas del ledger del ítem en orden de creación
//
//	y persiste el resultado. Herramienta de reparación para admins.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RebuildSnapshotRequest  true  "branch_id, item_type, item_id"
// @Success      200   {object}  dto.RebuildSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/snapshots/rebuild [post]
func (h *InventoryHandler) RebuildSnapshot(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.RebuildSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.rebuild.Rebuild(c.Context(), businessID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id, item_type e item_id son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
