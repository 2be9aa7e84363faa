package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ProductHandler CRUD de productos y catálogos de unidades de medida y marcas.
type ProductHandler struct {
	productUC *usecase.ProductUseCase
	log       zerolog.Logger
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(productUC *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{productUC: productUC, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "Producto a crear"
// @Success      201 {object} dto.ProductResponse
// @Failure      404 {object} dto.ErrorResponse "Unidad de medida inexistente"
// @Security     BearerAuth
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.productUC.Create(GetCompanyID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("product_id", resp.ID).Msg("producto creado")
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	resp, err := h.productUC.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "ID del producto"
// @Param        request body dto.UpdateProductRequest true "Campos a actualizar"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.productUC.Update(GetCompanyID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit  query int false "Límite de página"
// @Param        offset query int false "Offset de página"
// @Success      200 {object} dto.ProductListResponse
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.Normalize()
	resp, err := h.productUC.List(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Rechazado con 409 si el producto está estocado en alguna bodega
// @Tags         products
// @Produce      json
// @Param        id path string true "ID del producto"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.productUC.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnitMeasure godoc
// @Summary      Crear unidad de medida
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUnitMeasureRequest true "Unidad a crear"
// @Success      201 {object} dto.UnitMeasureResponse
// @Security     BearerAuth
// @Router       /api/units [post]
func (h *ProductHandler) CreateUnitMeasure(c *fiber.Ctx) error {
	var req dto.CreateUnitMeasureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.productUC.CreateUnitMeasure(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListUnitMeasures godoc
// @Summary      Listar unidades de medida
// @Tags         units
// @Produce      json
// @Success      200 {array} dto.UnitMeasureResponse
// @Security     BearerAuth
// @Router       /api/units [get]
func (h *ProductHandler) ListUnitMeasures(c *fiber.Ctx) error {
	resp, err := h.productUC.ListUnitMeasures()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBrandRequest true "Marca a crear"
// @Success      201 {object} dto.BrandResponse
// @Failure      409 {object} dto.ErrorResponse "Nombre de marca ya registrado"
// @Security     BearerAuth
// @Router       /api/brands [post]
func (h *ProductHandler) CreateBrand(c *fiber.Ctx) error {
	var req dto.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.productUC.CreateBrand(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetBrand godoc
// @Summary      Obtener marca
// @Tags         brands
// @Produce      json
// @Param        id path string true "ID de la marca"
// @Success      200 {object} dto.BrandResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/brands/{id} [get]
func (h *ProductHandler) GetBrand(c *fiber.Ctx) error {
	resp, err := h.productUC.GetBrand(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateBrand godoc
// @Summary      Renombrar marca
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        id path string true "ID de la marca"
// @Param        request body dto.UpdateBrandRequest true "Nuevo nombre"
// @Success      200 {object} dto.BrandResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/brands/{id} [put]
func (h *ProductHandler) UpdateBrand(c *fiber.Ctx) error {
	var req dto.UpdateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.productUC.UpdateBrand(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         brands
// @Produce      json
// @Success      200 {array} dto.BrandResponse
// @Security     BearerAuth
// @Router       /api/brands [get]
func (h *ProductHandler) ListBrands(c *fiber.Ctx) error {
	resp, err := h.productUC.ListBrands()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteBrand godoc
// @Summary      Eliminar marca
// @Description  Rechazado con 409 si algún producto referencia la marca
// @Tags         brands
// @Produce      json
// @Param        id path string true "ID de la marca"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/brands/{id} [delete]
func (h *ProductHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.productUC.DeleteBrand(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
