package entity

import "time"

// OrderItem línea de un pedido ya colocado: solo referencia al producto y cantidad.
// El backend valora el pedido; el cliente nunca envía precios.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order pedido tal como lo devuelve el backend (tracking e historial).
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items"`
	Address     Address     `json:"address"`
	GuestName   string      `json:"guestName,omitempty"`
	GuestEmail  string      `json:"guestEmail,omitempty"`
	GuestPhone  string      `json:"guestPhone,omitempty"`
}
