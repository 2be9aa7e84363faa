package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct{ users map[string]*entity.User }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProfileRepo struct{ profiles []*entity.Profile }

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (r *fakeProfileRepo) Create(p *entity.Profile) error { r.profiles = append(r.profiles, p); return nil }
func (r *fakeProfileRepo) GetByUserAndCompany(userID, companyID string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID && p.CompanyID == companyID {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProfileRepo) ListByUser(userID string) ([]*entity.Profile, error) {
	var list []*entity.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			list = append(list, p)
		}
	}
	return list, nil
}
func (r *fakeProfileRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Profile, error) {
	var list []*entity.Profile
	for _, p := range r.profiles {
		if p.CompanyID == companyID {
			list = append(list, p)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "00000000-0000-0000-0000-00000000000a"
	testSecret    = "test-secret-key-for-unit-tests"
)

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeProfileRepo) {
	users := &fakeUserRepo{users: make(map[string]*entity.User)}
	profiles := &fakeProfileRepo{}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "Ferretería El Tornillo", TaxID: "900123456", Status: "active"},
	}}
	uc := auth.NewAuthUseCase(users, profiles, companies, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "almacen-test",
	})
	return uc, users, profiles
}

func register(t *testing.T, uc *auth.AuthUseCase, email, password, role string) *dto.UserResponse {
	t.Helper()
	user, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     email,
		Password:  password,
		Name:      "Usuario de Prueba",
		Role:      role,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaUsuarioYPerfil(t *testing.T) {
	uc, users, profiles := newAuthUC()

	resp := register(t, uc, "bodeguero@tornillo.co", "supersecreta1", "bodeguero")
	assert.Equal(t, testCompanyID, resp.CompanyID)
	assert.Equal(t, "bodeguero", resp.Role)

	stored := users.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecreta1", stored.PasswordHash, "el password nunca se guarda en claro")

	require.Len(t, profiles.profiles, 1)
	assert.True(t, profiles.profiles[0].Active)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc, "dup@tornillo.co", "supersecreta1", "vendedor")

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "dup@tornillo.co",
		Password:  "otraclave123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_EmpresaInexistente(t *testing.T) {
	uc, _, _ := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "no-existe",
		Email:     "alguien@tornillo.co",
		Password:  "supersecreta1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Login correcto: el token lleva user_id, company_id y role del perfil activo.
func TestLogin_TokenConIdentidadDelPerfil(t *testing.T) {
	uc, _, _ := newAuthUC()
	created := register(t, uc, "admin@tornillo.co", "supersecreta1", "admin")

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@tornillo.co", Password: "supersecreta1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	id, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id.UserID)
	assert.Equal(t, testCompanyID, id.CompanyID)
	assert.Equal(t, "admin", id.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc, "admin@tornillo.co", "supersecreta1", "admin")

	_, err := uc.Login(dto.LoginRequest{Email: "admin@tornillo.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tornillo.co", Password: "loquesea1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Me devuelve el usuario del token con empresa y rol del perfil.
func TestMe_DevuelvePerfilDeLaEmpresa(t *testing.T) {
	uc, _, _ := newAuthUC()
	created := register(t, uc, "bodeguero@tornillo.co", "supersecreta1", "bodeguero")

	resp, err := uc.Me(created.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, testCompanyID, resp.CompanyID)
	assert.Equal(t, "bodeguero", resp.Role)
}

// Si el perfil fue revocado tras emitir el token, Me devuelve el usuario sin
// empresa ni rol.
func TestMe_SinPerfilEnLaEmpresa(t *testing.T) {
	uc, _, profiles := newAuthUC()
	created := register(t, uc, "huerfano@tornillo.co", "supersecreta1", "vendedor")
	profiles.profiles = nil

	resp, err := uc.Me(created.ID, testCompanyID)
	require.NoError(t, err)
	assert.Empty(t, resp.CompanyID)
	assert.Empty(t, resp.Role)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newAuthUC()
	_, err := uc.Me("no-existe", testCompanyID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ListProfiles lista los perfiles de la empresa con los datos del usuario.
func TestListProfiles_IncluyeDatosDelUsuario(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc, "admin@tornillo.co", "supersecreta1", "admin")
	register(t, uc, "vendedor@tornillo.co", "supersecreta1", "vendedor")

	resp, err := uc.ListProfiles(testCompanyID, 20, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	byEmail := make(map[string]string, len(resp.Items))
	for _, item := range resp.Items {
		assert.Equal(t, testCompanyID, item.CompanyID)
		assert.NotEmpty(t, item.UserName)
		byEmail[item.UserEmail] = item.Role
	}
	assert.Equal(t, "admin", byEmail["admin@tornillo.co"])
	assert.Equal(t, "vendedor", byEmail["vendedor@tornillo.co"])
}

func TestListProfiles_OtraEmpresaVacia(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc, "admin@tornillo.co", "supersecreta1", "admin")

	resp, err := uc.ListProfiles("00000000-0000-0000-0000-00000000000b", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

// Usuario sin ningún perfil activo no puede obtener token.
func TestLogin_SinPerfilActivo(t *testing.T) {
	uc, _, profiles := newAuthUC()
	register(t, uc, "inactivo@tornillo.co", "supersecreta1", "vendedor")
	profiles.profiles[0].Active = false

	_, err := uc.Login(dto.LoginRequest{Email: "inactivo@tornillo.co", Password: "supersecreta1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
