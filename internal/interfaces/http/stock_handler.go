package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// StockHandler expone el stock por HTTP. La creación y eliminación pasan por
// el motor de stock (movimiento génesis y protección referencial); las
// consultas y la edición de precio van por el caso de uso de lectura.
type StockHandler struct {
	ledgerUC *ledger.UseCase
	stockUC  *usecase.StockUseCase
	log      zerolog.Logger
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(ledgerUC *ledger.UseCase, stockUC *usecase.StockUseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, stockUC: stockUC, log: log}
}

// Create godoc
// @Summary      Crear registro de stock
// @Description  Crea un stock con su movimiento génesis (entrada por la cantidad inicial)
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateStockRequest true "Stock a crear"
// @Success      201 {object} dto.StockResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	stock, err := h.ledgerUC.CreateStock(c.UserContext(), ledger.CreateStockInput{
		CompanyID:   GetCompanyID(c),
		UserID:      GetUserID(c),
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("warehouse_id", req.WarehouseID).Str("product_id", req.ProductID).Msg("crear stock rechazado")
		return respondError(c, err)
	}
	h.log.Info().Str("stock_id", stock.ID).Str("quantity", stock.Quantity.String()).Msg("stock creado")
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

// List godoc
// @Summary      Listar stock
// @Description  Lista el stock de la empresa, filtrable por bodega y producto
// @Tags         stocks
// @Produce      json
// @Param        warehouse_id query string false "Filtrar por bodega"
// @Param        product_id   query string false "Filtrar por producto"
// @Param        limit  query int false "Límite de página"
// @Param        offset query int false "Offset de página"
// @Success      200 {object} dto.StockListResponse
// @Security     BearerAuth
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.Normalize()
	resp, err := h.stockUC.List(GetCompanyID(c), c.Query("warehouse_id"), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary      Detalle de stock
// @Description  Stock con su historial de movimientos (más recientes primero)
// @Tags         stocks
// @Produce      json
// @Param        id path string true "ID del stock"
// @Success      200 {object} dto.StockDetailResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	resp, err := h.stockUC.GetDetail(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "stock no encontrado"})
	}
	return c.JSON(resp)
}

// UpdatePrice godoc
// @Summary      Editar precio del stock
// @Description  Solo el precio es editable; la cantidad se muta registrando movimientos
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id path string true "ID del stock"
// @Param        request body dto.UpdateStockRequest true "Nuevo precio"
// @Success      200 {object} dto.StockResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stocks/{id} [patch]
func (h *StockHandler) UpdatePrice(c *fiber.Ctx) error {
	var req dto.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.stockUC.UpdatePrice(GetCompanyID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "stock no encontrado"})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar registro de stock
// @Description  Rechazado con 409 mientras existan movimientos que lo referencien
// @Tags         stocks
// @Produce      json
// @Param        id path string true "ID del stock"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.ledgerUC.DeleteStock(c.UserContext(), GetCompanyID(c), id); err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("stock_id", id).Msg("stock eliminado")
	return c.SendStatus(fiber.StatusNoContent)
}
