package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock y estadísticas (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.MovementQueryUseCase
	stats    *inventory.StatisticsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	query *inventory.MovementQueryUseCase,
	stats *inventory.StatisticsUseCase,
) *InventoryHandler {
	return &InventoryHandler{register: register, query: query, stats: stats}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (entrada o salida)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (entrada|salida), quantity, reason"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente; incluye available_stock"
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.register.Register(c.Context(), userID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.query.List(c.Context(), c.Query("product_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetStatistics godoc
// @Summary      Estadísticas del libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementStatisticsDTO
// @Router       /api/inventory/statistics [get]
func (h *InventoryHandler) GetStatistics(c *fiber.Ctx) error {
	out, err := h.stats.Get(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
