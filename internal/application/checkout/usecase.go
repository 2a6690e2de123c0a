// Package checkout orquesta la colocación de pedidos: construye el payload a
// partir del carrito actual, lo envía por el gateway y vacía el carrito en
// éxito. El pedido solo lleva productID y cantidad por línea: el backend
// valora el pedido con sus precios vigentes, de modo que un snapshot de precio
// viejo en el carrito afecta la visualización pero nunca el monto cobrado.
package checkout

import (
	"context"
	"fmt"

	"github.com/jhoicas/pyrostore/internal/application/cart"
	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/ports"
	"github.com/jhoicas/pyrostore/internal/domain"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

// GuestInfo identidad de invitado para checkout sin cuenta.
type GuestInfo struct {
	Name    string
	Email   string
	Phone   string
	Address entity.Address
}

// UseCase caso de uso de checkout.
type UseCase struct {
	gw   ports.StorefrontGateway
	cart *cart.Engine
	log  *logger.Logger
}

// NewUseCase construye el caso de uso de checkout.
func NewUseCase(gw ports.StorefrontGateway, cartEngine *cart.Engine, log *logger.Logger) *UseCase {
	return &UseCase{gw: gw, cart: cartEngine, log: log}
}

// PlaceGuestOrder coloca un pedido como invitado. Requiere nombre, email,
// teléfono y dirección completos; el carrito no puede estar vacío.
func (u *UseCase) PlaceGuestOrder(ctx context.Context, paymentMethod string, guest GuestInfo) (*dto.PlaceOrderResponse, error) {
	if guest.Name == "" || guest.Email == "" || guest.Phone == "" {
		return nil, fmt.Errorf("datos de invitado incompletos: %w", domain.ErrInvalidInput)
	}
	if guest.Address.Line1 == "" || guest.Address.City == "" {
		return nil, fmt.Errorf("dirección de invitado incompleta: %w", domain.ErrInvalidInput)
	}
	addr := guest.Address
	return u.place(ctx, dto.PlaceOrderRequest{
		PaymentMethod: paymentMethod,
		GuestName:     guest.Name,
		GuestEmail:    guest.Email,
		GuestPhone:    guest.Phone,
		Address:       &addr,
	})
}

// PlaceCustomerOrder coloca un pedido como cliente autenticado contra una
// dirección guardada. La autenticación la decide el gateway (credencial
// retenida); aquí solo se exige la dirección.
func (u *UseCase) PlaceCustomerOrder(ctx context.Context, paymentMethod, addressID string) (*dto.PlaceOrderResponse, error) {
	if addressID == "" {
		return nil, fmt.Errorf("addressId requerido: %w", domain.ErrInvalidInput)
	}
	return u.place(ctx, dto.PlaceOrderRequest{
		PaymentMethod: paymentMethod,
		AddressID:     addressID,
	})
}

func (u *UseCase) place(ctx context.Context, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	state := u.cart.State()
	if len(state.Items) == 0 {
		return nil, fmt.Errorf("colocar pedido: %w", domain.ErrEmptyCart)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("método de pago requerido: %w", domain.ErrInvalidInput)
	}
	req.Items = make([]entity.OrderItem, 0, len(state.Items))
	for _, it := range state.Items {
		req.Items = append(req.Items, entity.OrderItem{ProductID: it.Product.ID, Quantity: it.Quantity})
	}

	out, err := u.gw.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	u.cart.Clear()
	u.log.Info().Str("order", out.OrderNumber).Int("lines", len(req.Items)).Msg("pedido colocado")
	return out, nil
}
