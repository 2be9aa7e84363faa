package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
// El registro crea el usuario y su perfil en la empresa; el token lleva
// user_id, company_id y role para que los handlers pasen la identidad
// resuelta de forma explícita al motor de stock.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	companyRepo repository.CompanyRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, profileRepo: profileRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario (bcrypt para el password) y su perfil en la
// empresa indicada. ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound // empresa no existe
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	profile := &entity.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CompanyID: in.CompanyID,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return toUserResponse(user, profile), nil
}

// Login verifica email/password, genera JWT con el perfil del usuario y
// retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	profile, err := uc.firstActiveProfile(user.ID)
	if err != nil {
		return nil, err
	}
	identity := jwt.Identity{UserID: user.ID, CompanyID: profile.CompanyID, Role: profile.Role}
	token, err := jwt.Generate(uc.jwtCfg.Secret, identity, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, profile),
	}, nil
}

// Me devuelve el usuario autenticado con su perfil en la empresa del token.
// Si el perfil ya no existe (revocado tras emitir el token) se devuelve el
// usuario sin empresa ni rol.
func (uc *AuthUseCase) Me(userID, companyID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.profileRepo.GetByUserAndCompany(userID, companyID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user, profile), nil
}

// ListProfiles lista los perfiles de una empresa con el usuario de cada uno.
func (uc *AuthUseCase) ListProfiles(companyID string, limit, offset int) (*dto.ProfileListResponse, error) {
	profiles, err := uc.profileRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		item := dto.ProfileResponse{
			ID:        p.ID,
			UserID:    p.UserID,
			CompanyID: p.CompanyID,
			Role:      p.Role,
			Active:    p.Active,
			CreatedAt: p.CreatedAt,
		}
		user, err := uc.userRepo.GetByID(p.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			item.UserName = user.Name
			item.UserEmail = user.Email
		}
		items = append(items, item)
	}
	return &dto.ProfileListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// firstActiveProfile busca el primer perfil activo del usuario. ErrForbidden
// si no tiene ninguno (cuenta sin empresa asociada).
func (uc *AuthUseCase) firstActiveProfile(userID string) (*entity.Profile, error) {
	profiles, err := uc.profileRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.Active {
			return p, nil
		}
	}
	return nil, domain.ErrForbidden
}

func toUserResponse(u *entity.User, p *entity.Profile) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if p != nil {
		resp.CompanyID = p.CompanyID
		resp.Role = p.Role
	}
	return resp
}
