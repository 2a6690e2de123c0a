package dto

import "github.com/jhoicas/pyrostore/internal/domain/entity"

// PlaceOrderRequest cuerpo para colocar un pedido. Identidad de invitado
// (GuestName/Email/Phone + Address) o de cliente autenticado (AddressID),
// nunca ambas.
type PlaceOrderRequest struct {
	Items         []entity.OrderItem `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	GuestName     string             `json:"guestName,omitempty"`
	GuestEmail    string             `json:"guestEmail,omitempty"`
	GuestPhone    string             `json:"guestPhone,omitempty"`
	Address       *entity.Address    `json:"address,omitempty"`
	AddressID     string             `json:"addressId,omitempty"`
}

// PlaceOrderResponse confirmación del pedido.
type PlaceOrderResponse struct {
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
}

// TrackOrderParams consulta de tracking: número de pedido más email o teléfono.
type TrackOrderParams struct {
	OrderNumber string
	Email       string
	Phone       string
}

// GuestHistoryParams historial de pedidos de invitado por email o teléfono.
type GuestHistoryParams struct {
	Email string
	Phone string
}

// OrdersResponse envoltura {orders: ...} de los historiales.
type OrdersResponse struct {
	Orders []entity.Order `json:"orders"`
}
