package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// AuthHandler registro y login de usuarios.
type AuthHandler struct {
	authUC *auth.AuthUseCase
	log    zerolog.Logger
}

// NewAuthHandler construye el handler de autenticación.
func NewAuthHandler(authUC *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea un usuario y su perfil en la empresa indicada
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Usuario a registrar"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse "Email ya registrado"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	user, err := h.authUC.RegisterUser(req)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("user_id", user.ID).Str("company_id", user.CompanyID).Msg("usuario registrado")
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Login
// @Description  Verifica credenciales y devuelve un JWT con user_id, company_id y role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body inválido"})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.authUC.Login(req)
	if err != nil {
		h.log.Warn().Err(err).Str("email", req.Email).Msg("login fallido")
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Me godoc
// @Summary      Usuario autenticado
// @Description  Devuelve el usuario del token con su perfil en la empresa activa
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.authUC.Me(GetUserID(c), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Profiles godoc
// @Summary      Listar perfiles de la empresa
// @Tags         auth
// @Produce      json
// @Param        limit  query int false "Límite de página"
// @Param        offset query int false "Offset de página"
// @Success      200 {object} dto.ProfileListResponse
// @Security     BearerAuth
// @Router       /api/profiles [get]
func (h *AuthHandler) Profiles(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.Normalize()
	resp, err := h.authUC.ListProfiles(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
