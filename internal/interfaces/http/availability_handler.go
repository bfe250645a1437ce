package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Restaurante-api/internal/application/availability"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// AvailabilityHandler responde cuántas porciones de un producto pueden
// venderse con el stock actual (protegido).
type AvailabilityHandler struct {
	uc *availability.UseCase
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(uc *availability.UseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// AvailablePortions godoc
// @Summary      Porciones disponibles de un producto
// @Description  Calcula min(floor(stock/requerido)) sobre las líneas de la receta.
//
//	Sin receta devuelve cero porciones con recipe_defined=false; no es error.
//
// @Tags         availability
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true  "ID del producto"
// @Param        branch_id  query  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/availability [get]
func (h *AvailabilityHandler) AvailablePortions(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	out, err := h.uc.AvailablePortions(c.Context(), businessID, branchID, c.Params("id"))
	if err != nil {
		if err == domain.ErrUnknownItem {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ITEM", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
