// Package storefront implementa el gateway tipado hacia la API REST pública
// de la tienda. Usa net/http de la stdlib; no requiere librerías de terceros.
//
// El cliente retiene la credencial bearer en dos copias: la de memoria
// (autoritativa dentro del proceso, adjuntada a cada request) y la durable en
// el KeyValueStore (fuente de verdad entre reinicios). Login y Logout
// mantienen ambas en sincronía de forma atómica para el caller.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/ports"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

// APIError respuesta no-2xx del backend. Message es el mensaje del servidor
// (campo "error" del cuerpo) si fue parseable, o un mensaje derivado del
// status si no lo fue.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	StoreID string
	// HTTPClient permite inyectar timeouts o transportes; nil usa http.DefaultClient.
	// El gateway en sí no define timeout ni reintentos: eso decide el caller.
	HTTPClient *http.Client
}

// Client gateway HTTP de la tienda. Implementa ports.StorefrontGateway.
type Client struct {
	baseURL string
	storeID string
	http    *http.Client
	creds   ports.KeyValueStore
	log     *logger.Logger
	token   string
}

var _ ports.StorefrontGateway = (*Client)(nil)

// NewClient construye el gateway e hidrata la copia en memoria de la
// credencial desde el almacenamiento durable, si existe.
func NewClient(cfg Config, creds ports.KeyValueStore, log *logger.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		storeID: cfg.StoreID,
		http:    hc,
		creds:   creds,
		log:     log,
	}
	if raw, ok, err := creds.Get(ports.KeyCredential); err == nil && ok {
		c.token = string(raw)
	} else if err != nil {
		log.Warn().Err(err).Msg("leer credencial durable")
	}
	return c
}

// HasCredential indica si hay una credencial retenida en memoria.
func (c *Client) HasCredential() bool {
	return c.token != ""
}

// setToken fija ambas copias de la credencial.
func (c *Client) setToken(token string) {
	c.token = token
	if err := c.creds.Set(ports.KeyCredential, []byte(token)); err != nil {
		c.log.Error().Err(err).Msg("persistir credencial")
	}
}

// clearToken borra ambas copias de la credencial.
func (c *Client) clearToken() {
	c.token = ""
	if err := c.creds.Delete(ports.KeyCredential); err != nil {
		c.log.Error().Err(err).Msg("borrar credencial durable")
	}
}

// storePath antepone el prefijo de rutas con ámbito de tienda.
func (c *Client) storePath(p string) string {
	return "/api/public/store/" + c.storeID + p
}

// do arma y ejecuta un request JSON. body nil omite el cuerpo; out nil
// descarta la respuesta. Los fallos de transporte se devuelven envueltos tal
// cual (NetworkFailure); los no-2xx se mapean a *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: leer respuesta: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "HTTP " + strconv.Itoa(resp.StatusCode)
		var apiBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiBody) == nil && apiBody.Error != "" {
			msg = apiBody.Error
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("error", msg).Msg("respuesta no exitosa")
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: deserializar respuesta: %w", method, path, err)
		}
	}
	return nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// ListProducts lista el catálogo con filtros y paginación.
func (c *Client) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ProductsResponse, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	var out dto.ProductsResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/products"), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories lista las categorías de la tienda.
func (c *Client) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	var out dto.CategoriesResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/categories"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// PlaceOrder coloca un pedido (invitado o autenticado).
func (c *Client) PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	var out dto.PlaceOrderResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/orders"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackOrder consulta un pedido por número más email o teléfono.
func (c *Client) TrackOrder(ctx context.Context, params dto.TrackOrderParams) (*entity.Order, error) {
	q := url.Values{}
	q.Set("orderNumber", params.OrderNumber)
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Phone != "" {
		q.Set("phone", params.Phone)
	}
	var out entity.Order
	if err := c.do(ctx, http.MethodGet, c.storePath("/orders/track"), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GuestOrderHistory historial de pedidos de invitado por email o teléfono.
func (c *Client) GuestOrderHistory(ctx context.Context, params dto.GuestHistoryParams) (*dto.OrdersResponse, error) {
	q := url.Values{}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Phone != "" {
		q.Set("phone", params.Phone)
	}
	var out dto.OrdersResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/orders/guest-history"), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// Register registra un cliente nuevo. No autentica: el caller debe hacer login.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/customers/register"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login autentica y guarda la credencial (memoria + durable) en cuanto la
// respuesta parsea, antes de retornar.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/customers/login"), nil, in, &out); err != nil {
		return nil, err
	}
	c.setToken(out.Token)
	return &out, nil
}

// Logout borra la credencial. Operación local del cliente: el backend no
// mantiene estado de sesión por token.
func (c *Client) Logout(_ context.Context) error {
	c.clearToken()
	return nil
}

// GetProfile devuelve el perfil del cliente autenticado.
func (c *Client) GetProfile(ctx context.Context) (*entity.Customer, error) {
	var out dto.CustomerResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/customers/profile"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// UpdateProfile actualiza el perfil y devuelve el cliente según el servidor.
func (c *Client) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*entity.Customer, error) {
	var out dto.CustomerResponse
	if err := c.do(ctx, http.MethodPut, c.storePath("/customers/profile"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// OrderHistory historial de pedidos del cliente autenticado.
func (c *Client) OrderHistory(ctx context.Context) (*dto.OrdersResponse, error) {
	var out dto.OrdersResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/customers/orders"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword solicita el correo de recuperación de contraseña.
func (c *Client) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/customers/forgot-password"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword consume el token de recuperación y fija la contraseña nueva.
func (c *Client) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/customers/reset-password"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Direcciones ───────────────────────────────────────────────────────────────

// ListAddresses lista las direcciones del cliente autenticado.
func (c *Client) ListAddresses(ctx context.Context) (*dto.AddressesResponse, error) {
	var out dto.AddressesResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/customers/addresses"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddAddress crea una dirección.
func (c *Client) AddAddress(ctx context.Context, in entity.Address) (*entity.Address, error) {
	var out dto.AddressResponse
	if err := c.do(ctx, http.MethodPost, c.storePath("/customers/addresses"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

// UpdateAddress actualiza una dirección. Ruta sin ámbito de tienda: así la
// expone el backend (el id de dirección ya identifica tienda y cliente).
func (c *Client) UpdateAddress(ctx context.Context, id string, in entity.Address) (*entity.Address, error) {
	var out dto.AddressResponse
	if err := c.do(ctx, http.MethodPut, "/api/public/customers/addresses/"+id, nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

// DeleteAddress borra una dirección. Ruta sin ámbito de tienda, igual que Update.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	var out dto.DeleteResponse
	return c.do(ctx, http.MethodDelete, "/api/public/customers/addresses/"+id, nil, nil, &out)
}

// GetAddress devuelve una dirección por id.
func (c *Client) GetAddress(ctx context.Context, id string) (*entity.Address, error) {
	var out dto.AddressResponse
	if err := c.do(ctx, http.MethodGet, c.storePath("/customers/addresses/"+id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}
