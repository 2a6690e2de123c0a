package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/domain"
	pkgjwt "github.com/jhoicas/pyrostore/pkg/jwt"
)

// CustomerHandler atiende registro, login, perfil, historial y recuperación de contraseña.
type CustomerHandler struct {
	store *MemStore
	deps  RouterDeps
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(store *MemStore, deps RouterDeps) *CustomerHandler {
	return &CustomerHandler{store: store, deps: deps}
}

// Register crea la cuenta del cliente. No autentica: el cliente debe hacer login después.
func (h *CustomerHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.Email == "" || in.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}
	if len(in.Password) < 8 {
		return jsonError(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}
	_, err := h.store.RegisterCustomer(in.Email, in.Password, in.FirstName, in.LastName, in.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return jsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Registration successful"})
}

// Login autentica y devuelve {token, customer}.
func (h *CustomerHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	customer, err := h.store.Authenticate(in.Email, in.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	token, err := pkgjwt.Generate(h.deps.JWTSecret, customer.ID, h.deps.StoreID, customer.Email,
		h.deps.JWTIssuer, h.deps.JWTExpMinutes)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.LoginResponse{Token: token, Customer: *customer})
}

// Profile devuelve {customer} del token.
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
	customer, err := h.store.GetCustomer(CustomerID(c))
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return c.JSON(dto.CustomerResponse{Customer: *customer})
}

// UpdateProfile aplica la actualización parcial y devuelve el cliente resultante.
func (h *CustomerHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	customer, err := h.store.UpdateCustomer(CustomerID(c), in.FirstName, in.LastName, in.Phone)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return c.JSON(dto.CustomerResponse{Customer: *customer})
}

// Orders historial de pedidos del cliente autenticado.
func (h *CustomerHandler) Orders(c *fiber.Ctx) error {
	return c.JSON(dto.OrdersResponse{Orders: h.store.CustomerOrders(CustomerID(c))})
}

// ForgotPassword genera el token de recuperación. Responde igual exista o no
// el email, para no filtrar qué correos tienen cuenta.
func (h *CustomerHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// En el backend real esto dispara un email; el mock solo genera el token.
	_, _ = h.store.CreateResetToken(in.Email)
	return c.JSON(dto.MessageResponse{Message: "If the email exists, a reset link has been sent"})
}

// ResetPassword consume el token y fija la contraseña nueva.
func (h *CustomerHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(in.Password) < 8 {
		return jsonError(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}
	if err := h.store.ResetPassword(in.Token, in.Password); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}
	return c.JSON(dto.MessageResponse{Message: "Password has been reset"})
}
