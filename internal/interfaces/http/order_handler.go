package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/domain"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// OrderHandler atiende colocación, tracking e historial de invitado.
type OrderHandler struct {
	store     *MemStore
	jwtSecret string
	storeID   string
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(store *MemStore, jwtSecret, storeID string) *OrderHandler {
	return &OrderHandler{store: store, jwtSecret: jwtSecret, storeID: storeID}
}

// Place coloca un pedido. Con bearer válido el pedido es del cliente y se
// resuelve addressId contra sus direcciones guardadas; sin bearer es de
// invitado y exige identidad más dirección completas.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(in.Items) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "Order must contain at least one item")
	}
	if in.PaymentMethod == "" {
		return jsonError(c, fiber.StatusBadRequest, "Payment method is required")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return jsonError(c, fiber.StatusBadRequest, "Item quantity must be at least 1")
		}
		if !h.store.ProductExists(it.ProductID) {
			return jsonError(c, fiber.StatusBadRequest, "Unknown product: "+it.ProductID)
		}
	}

	customerID, authenticated := bearerCustomer(c, h.jwtSecret, h.storeID)

	var addr entity.Address
	switch {
	case authenticated && in.AddressID != "":
		saved, err := h.store.GetAddress(customerID, in.AddressID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return jsonError(c, fiber.StatusBadRequest, "Unknown address")
			}
			return jsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		addr = *saved
	case in.Address != nil:
		if in.Address.Line1 == "" || in.Address.City == "" {
			return jsonError(c, fiber.StatusBadRequest, "Shipping address is incomplete")
		}
		addr = *in.Address
	default:
		return jsonError(c, fiber.StatusBadRequest, "Shipping address is required")
	}

	if !authenticated {
		if in.GuestName == "" || in.GuestEmail == "" || in.GuestPhone == "" {
			return jsonError(c, fiber.StatusBadRequest, "Guest name, email and phone are required")
		}
		customerID = ""
	}

	number := h.store.PlaceOrder(customerID, in.Items, addr, in.GuestName, in.GuestEmail, in.GuestPhone)
	return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{
		OrderNumber: number,
		Message:     "Order placed successfully",
	})
}

// Track devuelve un pedido por número; exige email o teléfono que coincida.
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	orderNumber := c.Query("orderNumber")
	email := c.Query("email")
	phone := c.Query("phone")
	if orderNumber == "" {
		return jsonError(c, fiber.StatusBadRequest, "orderNumber is required")
	}
	if email == "" && phone == "" {
		return jsonError(c, fiber.StatusBadRequest, "email or phone is required")
	}
	order, err := h.store.TrackOrder(orderNumber, email, phone)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	return c.JSON(order)
}

// GuestHistory pedidos de invitado por email o teléfono.
func (h *OrderHandler) GuestHistory(c *fiber.Ctx) error {
	email := c.Query("email")
	phone := c.Query("phone")
	if email == "" && phone == "" {
		return jsonError(c, fiber.StatusBadRequest, "email or phone is required")
	}
	return c.JSON(dto.OrdersResponse{Orders: h.store.GuestOrders(email, phone)})
}
