package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// AddressHandler atiende el CRUD de direcciones del cliente autenticado.
type AddressHandler struct {
	store *MemStore
}

// NewAddressHandler construye el handler de direcciones.
func NewAddressHandler(store *MemStore) *AddressHandler {
	return &AddressHandler{store: store}
}

// List devuelve {addresses}.
func (h *AddressHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.AddressesResponse{Addresses: h.store.ListAddresses(CustomerID(c))})
}

// Add crea una dirección y devuelve {address} con su id.
func (h *AddressHandler) Add(c *fiber.Ctx) error {
	var in entity.Address
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.Name == "" || in.Line1 == "" || in.City == "" {
		return jsonError(c, fiber.StatusBadRequest, "Name, line1 and city are required")
	}
	saved := h.store.AddAddress(CustomerID(c), in)
	return c.Status(fiber.StatusCreated).JSON(dto.AddressResponse{Address: saved})
}

// Get devuelve {address} por id.
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	addr, err := h.store.GetAddress(CustomerID(c), c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Address not found")
	}
	return c.JSON(dto.AddressResponse{Address: *addr})
}

// Update reemplaza la dirección y devuelve {address}.
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	var in entity.Address
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	addr, err := h.store.UpdateAddress(CustomerID(c), c.Params("id"), in)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Address not found")
	}
	return c.JSON(dto.AddressResponse{Address: *addr})
}

// Delete borra la dirección y devuelve {success}.
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteAddress(CustomerID(c), c.Params("id")); err != nil {
		return jsonError(c, fiber.StatusNotFound, "Address not found")
	}
	return c.JSON(dto.DeleteResponse{Success: true})
}
