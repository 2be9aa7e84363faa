package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// buildRouterApp monta el router completo. Las bajas con rol insuficiente se
// rechazan en el middleware, antes de tocar ningún caso de uso.
func buildRouterApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		JWTSecret: testJWTSecret,
		Log:       zerolog.Nop(),
	})
	return app
}

func doDelete(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Un vendedor no puede eliminar stock ni movimientos (solo admin o bodeguero).
func TestRouter_VendedorNoEliminaStockNiMovimientos(t *testing.T) {
	app := buildRouterApp()
	token := tokenForRole(t, "vendedor")

	for _, path := range []string{"/api/stocks/abc", "/api/movements/abc"} {
		resp := doDelete(t, app, path, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "FORBIDDEN", path)
	}
}

// Las bajas de catálogo (bodegas, productos, marcas) son solo de admin.
func TestRouter_BodegueroNoEliminaCatalogo(t *testing.T) {
	app := buildRouterApp()
	token := tokenForRole(t, "bodeguero")

	for _, path := range []string{"/api/warehouses/abc", "/api/products/abc", "/api/brands/abc"} {
		resp := doDelete(t, app, path, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// Sin token, cualquier ruta protegida responde 401 antes de evaluar el rol.
func TestRouter_SinTokenNoLlegaAlChequeoDeRol(t *testing.T) {
	app := buildRouterApp()

	resp := doDelete(t, app, "/api/stocks/abc", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
