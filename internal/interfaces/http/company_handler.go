package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// CompanyHandler CRUD de empresas (tenants).
type CompanyHandler struct {
	companyUC *usecase.CompanyUseCase
	log       zerolog.Logger
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(companyUC *usecase.CompanyUseCase, log zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC, log: log}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCompanyRequest true "Empresa a crear"
// @Success      201 {object} dto.CompanyResponse
// @Failure      409 {object} dto.ErrorResponse "TaxID ya registrado"
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.companyUC.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("company_id", resp.ID).Str("tax_id", resp.TaxID).Msg("empresa creada")
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary      Obtener empresa
// @Tags         companies
// @Produce      json
// @Param        id path string true "ID de la empresa"
// @Success      200 {object} dto.CompanyResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	resp, err := h.companyUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        limit  query int false "Límite de página"
// @Param        offset query int false "Offset de página"
// @Success      200 {object} dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.Normalize()
	resp, err := h.companyUC.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
