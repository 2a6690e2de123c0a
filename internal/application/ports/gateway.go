package ports

import (
	"context"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// StorefrontGateway puerto de salida hacia la API REST pública de la tienda.
// La implementación concreta vive en infrastructure/storefront; los casos de
// uso (session, checkout) dependen solo de esta interfaz para poder testearse
// con un gateway falso.
//
// Efecto lateral del contrato: Login guarda la credencial (copia en memoria y
// copia durable) antes de retornar; Logout borra ambas. Ninguna operación
// reintenta ni define timeout propio: eso es responsabilidad del caller vía ctx.
type StorefrontGateway interface {
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ProductsResponse, error)
	ListCategories(ctx context.Context) (*dto.CategoriesResponse, error)

	PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error)
	TrackOrder(ctx context.Context, params dto.TrackOrderParams) (*entity.Order, error)
	GuestOrderHistory(ctx context.Context, params dto.GuestHistoryParams) (*dto.OrdersResponse, error)

	Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*entity.Customer, error)
	UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*entity.Customer, error)
	OrderHistory(ctx context.Context) (*dto.OrdersResponse, error)
	ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, error)

	ListAddresses(ctx context.Context) (*dto.AddressesResponse, error)
	AddAddress(ctx context.Context, in entity.Address) (*entity.Address, error)
	UpdateAddress(ctx context.Context, id string, in entity.Address) (*entity.Address, error)
	DeleteAddress(ctx context.Context, id string) error
	GetAddress(ctx context.Context, id string) (*entity.Address, error)
}
