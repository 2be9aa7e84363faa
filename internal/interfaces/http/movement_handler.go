package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// MovementHandler registra y elimina movimientos de stock vía el motor de
// stock. Cada operación recalcula la cantidad del stock en la misma
// transacción; la respuesta siempre refleja el saldo ya recalculado.
type MovementHandler struct {
	ledgerUC *ledger.UseCase
	log      zerolog.Logger
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(ledgerUC *ledger.UseCase, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{ledgerUC: ledgerUC, log: log}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  Registra una entrada (IN) o salida (OUT) y recalcula el stock en la misma transacción
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id path string true "ID del stock"
// @Param        request body dto.RegisterMovementRequest true "Movimiento a registrar"
// @Success      201 {object} dto.StockResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse "Stock insuficiente para la salida"
// @Security     BearerAuth
// @Router       /api/stocks/{id}/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	stockID := c.Params("id")
	stock, err := h.ledgerUC.RegisterMovement(c.UserContext(), ledger.RegisterMovementInput{
		CompanyID: GetCompanyID(c),
		UserID:    GetUserID(c),
		StockID:   stockID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("stock_id", stockID).Str("type", req.Type).Msg("movimiento rechazado")
		return respondError(c, err)
	}
	h.log.Info().
		Str("stock_id", stock.ID).
		Str("type", req.Type).
		Str("quantity", req.Quantity.String()).
		Str("new_quantity", stock.Quantity.String()).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.StockResponse{
		ID:          stock.ID,
		WarehouseID: stock.WarehouseID,
		ProductID:   stock.ProductID,
		Quantity:    stock.Quantity,
		Price:       stock.Price,
		Active:      stock.Active,
		CreatedAt:   stock.CreatedAt,
		UpdatedAt:   stock.UpdatedAt,
	})
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Elimina el movimiento y recalcula el stock que lo contenía
// @Tags         movements
// @Produce      json
// @Param        id path string true "ID del movimiento"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.ledgerUC.DeleteMovement(c.UserContext(), GetCompanyID(c), id); err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("movement_id", id).Msg("movimiento eliminado")
	return c.SendStatus(fiber.StatusNoContent)
}
