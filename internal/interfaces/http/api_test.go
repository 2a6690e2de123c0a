package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	apphttp "github.com/jhoicas/pyrostore/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStoreID   = "demo-store"
	testJWTSecret = "test-secret-key-for-unit-tests"
	basePath      = "/api/public/store/" + testStoreID
)

func buildTestApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:         apphttp.NewMemStore(),
		StoreID:       testStoreID,
		JWTSecret:     testJWTSecret,
		JWTIssuer:     "pyrostore-test",
		JWTExpMinutes: 60,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body, out any) int {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out), "cuerpo inesperado: %s", data)
	}
	return resp.StatusCode
}

func registrarYLoguear(t *testing.T, app *fiber.App) (string, entity.Customer) {
	t.Helper()
	status := doJSON(t, app, fiber.MethodPost, basePath+"/customers/register", "", dto.RegisterRequest{
		Email: "ana@example.com", Password: "secreta123",
		FirstName: "Ana", LastName: "Ríos", Phone: "3001234567",
	}, nil)
	require.Equal(t, fiber.StatusCreated, status)

	var login dto.LoginResponse
	status = doJSON(t, app, fiber.MethodPost, basePath+"/customers/login", "", dto.LoginRequest{
		Email: "ana@example.com", Password: "secreta123",
	}, &login)
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return login.Token, login.Customer
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ListProducts(t *testing.T) {
	app := buildTestApp()

	var out dto.ProductsResponse
	status := doJSON(t, app, fiber.MethodGet, basePath+"/products", "", nil, &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, out.Products, "el catálogo sembrado no debe estar vacío")
	assert.Equal(t, len(out.Products), out.Pagination.Total)

	// Filtro por categoría
	status = doJSON(t, app, fiber.MethodGet, basePath+"/products?category=cat-fuentes", "", nil, &out)
	require.Equal(t, fiber.StatusOK, status)
	for _, p := range out.Products {
		assert.Equal(t, "cat-fuentes", p.CategoryID)
	}

	// Paginación
	status = doJSON(t, app, fiber.MethodGet, basePath+"/products?page=1&limit=2", "", nil, &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out.Products, 2)
	assert.Equal(t, 2, out.Pagination.Limit)
}

func TestAPI_TiendaDesconocida(t *testing.T) {
	app := buildTestApp()
	var errBody struct {
		Error string `json:"error"`
	}
	status := doJSON(t, app, fiber.MethodGet, "/api/public/store/otra-tienda/products", "", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Store not found", errBody.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuenta de cliente
// ──────────────────────────────────────────────────────────────────────────────

// TestAPI_RegistroDuplicado el error viaja como {"error": "..."} textual,
// que es exactamente lo que el gateway del cliente parsea.
func TestAPI_RegistroDuplicado(t *testing.T) {
	app := buildTestApp()
	registrarYLoguear(t, app)

	var errBody struct {
		Error string `json:"error"`
	}
	status := doJSON(t, app, fiber.MethodPost, basePath+"/customers/register", "", dto.RegisterRequest{
		Email: "ana@example.com", Password: "secreta123",
	}, &errBody)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already exists", errBody.Error)
}

func TestAPI_PerfilConToken(t *testing.T) {
	app := buildTestApp()
	token, customer := registrarYLoguear(t, app)

	var out dto.CustomerResponse
	status := doJSON(t, app, fiber.MethodGet, basePath+"/customers/profile", token, nil, &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, customer.ID, out.Customer.ID)
	assert.Equal(t, "ana@example.com", out.Customer.Email)

	// Actualización parcial: solo cambia lo enviado
	status = doJSON(t, app, fiber.MethodPut, basePath+"/customers/profile", token,
		dto.UpdateProfileRequest{FirstName: "Anita"}, &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Anita", out.Customer.FirstName)
	assert.Equal(t, "Ríos", out.Customer.LastName, "los campos no enviados no cambian")
}

func TestAPI_PerfilSinToken(t *testing.T) {
	app := buildTestApp()
	status := doJSON(t, app, fiber.MethodGet, basePath+"/customers/profile", "", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status = doJSON(t, app, fiber.MethodGet, basePath+"/customers/profile", "token-falso", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Direcciones y pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDireccionesYPedido(t *testing.T) {
	app := buildTestApp()
	token, _ := registrarYLoguear(t, app)

	// Crear dirección
	var addrOut dto.AddressResponse
	status := doJSON(t, app, fiber.MethodPost, basePath+"/customers/addresses", token, entity.Address{
		Name: "Casa", Line1: "Calle 10 # 5-23", City: "Medellín",
		State: "Antioquia", Zip: "050001", Country: "CO", Phone: "3001234567",
	}, &addrOut)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, addrOut.Address.ID)
	addrID := addrOut.Address.ID

	// Pedido autenticado contra la dirección guardada
	var orderOut dto.PlaceOrderResponse
	status = doJSON(t, app, fiber.MethodPost, basePath+"/orders", token, dto.PlaceOrderRequest{
		Items:         []entity.OrderItem{{ProductID: "prod-fuente-vulcan", Quantity: 2}},
		PaymentMethod: "cod",
		AddressID:     addrID,
	}, &orderOut)
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, orderOut.OrderNumber)

	// El pedido aparece en el historial del cliente
	var history dto.OrdersResponse
	status = doJSON(t, app, fiber.MethodGet, basePath+"/customers/orders", token, nil, &history)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, history.Orders, 1)
	assert.Equal(t, orderOut.OrderNumber, history.Orders[0].OrderNumber)
	assert.Equal(t, "Medellín", history.Orders[0].Address.City)

	// Update y delete van por la ruta sin ámbito de tienda
	addrOut.Address.Name = "Oficina"
	status = doJSON(t, app, fiber.MethodPut, "/api/public/customers/addresses/"+addrID, token,
		addrOut.Address, &addrOut)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Oficina", addrOut.Address.Name)

	var delOut dto.DeleteResponse
	status = doJSON(t, app, fiber.MethodDelete, "/api/public/customers/addresses/"+addrID, token, nil, &delOut)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, delOut.Success)
}

func TestAPI_PedidoInvitadoYTracking(t *testing.T) {
	app := buildTestApp()

	var orderOut dto.PlaceOrderResponse
	status := doJSON(t, app, fiber.MethodPost, basePath+"/orders", "", dto.PlaceOrderRequest{
		Items:         []entity.OrderItem{{ProductID: "prod-cometa-dorado", Quantity: 1}},
		PaymentMethod: "cod",
		GuestName:     "Carlos Gómez",
		GuestEmail:    "carlos@example.com",
		GuestPhone:    "3007654321",
		Address: &entity.Address{
			Name: "Casa", Line1: "Carrera 7 # 45-10", City: "Bogotá",
			State: "Cundinamarca", Zip: "110111", Country: "CO", Phone: "3007654321",
		},
	}, &orderOut)
	require.Equal(t, fiber.StatusCreated, status)

	// Tracking con email correcto
	var tracked entity.Order
	status = doJSON(t, app, fiber.MethodGet,
		basePath+"/orders/track?orderNumber="+orderOut.OrderNumber+"&email=carlos@example.com",
		"", nil, &tracked)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pending", tracked.Status)
	assert.Equal(t, "Carlos Gómez", tracked.GuestName)

	// Tracking con identidad ajena: el pedido no se expone
	status = doJSON(t, app, fiber.MethodGet,
		basePath+"/orders/track?orderNumber="+orderOut.OrderNumber+"&email=otra@example.com",
		"", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// Historial de invitado por email
	var history dto.OrdersResponse
	status = doJSON(t, app, fiber.MethodGet,
		basePath+"/orders/guest-history?email=carlos@example.com", "", nil, &history)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, history.Orders, 1)
}

func TestAPI_PedidoInvalido(t *testing.T) {
	app := buildTestApp()

	// Sin items
	status := doJSON(t, app, fiber.MethodPost, basePath+"/orders", "", dto.PlaceOrderRequest{
		PaymentMethod: "cod",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Producto inexistente
	var errBody struct {
		Error string `json:"error"`
	}
	status = doJSON(t, app, fiber.MethodPost, basePath+"/orders", "", dto.PlaceOrderRequest{
		Items:         []entity.OrderItem{{ProductID: "prod-fantasma", Quantity: 1}},
		PaymentMethod: "cod",
		GuestName:     "X", GuestEmail: "x@example.com", GuestPhone: "300",
		Address:       &entity.Address{Line1: "Calle 1", City: "Cali"},
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Unknown product: prod-fantasma", errBody.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ResetPassword(t *testing.T) {
	app := buildTestApp()
	registrarYLoguear(t, app)

	// Forgot responde igual exista o no el email
	var msg dto.MessageResponse
	status := doJSON(t, app, fiber.MethodPost, basePath+"/customers/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "nadie@example.com"}, &msg)
	assert.Equal(t, fiber.StatusOK, status)

	status = doJSON(t, app, fiber.MethodPost, basePath+"/customers/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "ana@example.com"}, &msg)
	assert.Equal(t, fiber.StatusOK, status)

	// Token inválido
	status = doJSON(t, app, fiber.MethodPost, basePath+"/customers/reset-password", "",
		dto.ResetPasswordRequest{Token: "token-falso", Password: "nueva-clave-123"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
