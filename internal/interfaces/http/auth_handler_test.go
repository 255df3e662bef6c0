package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/costeo-pro/internal/application/auth"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/costeo-pro/internal/interfaces/http"
)

// fakeUserRepo repositorio de usuarios en memoria para los tests de handler.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func buildAuthApp() *fiber.App {
	uc := auth.NewUseCase(&fakeUserRepo{byEmail: make(map[string]*entity.User)}, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	handler := apphttp.NewAuthHandler(uc)
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores de dominio a códigos HTTP a través del handler
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthHandler_RegisterYLogin(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"email": "ana@local", "password": "secreto123", "name": "Ana",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["token"])

	login := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "ana@local", "password": "secreto123",
	})
	defer login.Body.Close()
	assert.Equal(t, http.StatusOK, login.StatusCode)
}

// Email duplicado -> 409 con código DUPLICATE.
func TestAuthHandler_EmailDuplicado_409(t *testing.T) {
	app := buildAuthApp()

	first := postJSON(t, app, "/api/auth/register", fiber.Map{"email": "ana@local", "password": "x12345"})
	first.Body.Close()

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{"email": "ana@local", "password": "y67890"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "DUPLICATE")
}

// Password incorrecto -> 401 UNAUTHORIZED.
func TestAuthHandler_PasswordIncorrecto_401(t *testing.T) {
	app := buildAuthApp()

	first := postJSON(t, app, "/api/auth/register", fiber.Map{"email": "ana@local", "password": "secreto123"})
	first.Body.Close()

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"email": "ana@local", "password": "equivocado"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "UNAUTHORIZED")
}

// Usuario inexistente -> 404 NOT_FOUND.
func TestAuthHandler_UsuarioInexistente_404(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"email": "nadie@local", "password": "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Entrada sin email -> 400 VALIDATION.
func TestAuthHandler_EntradaInvalida_400(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{"password": "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "VALIDATION")
}
