// Binario de demostración: cablea el núcleo cliente completo (storage local,
// gateway, carrito, sesión, checkout) contra la API configurada y recorre un
// flujo corto de extremo a extremo. Útil contra cmd/mockapi en local.
package main

import (
	"context"
	"os"

	appcart "github.com/jhoicas/pyrostore/internal/application/cart"
	"github.com/jhoicas/pyrostore/internal/application/checkout"
	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/session"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/internal/infrastructure/localstore"
	"github.com/jhoicas/pyrostore/internal/infrastructure/storefront"
	"github.com/jhoicas/pyrostore/pkg/config"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("api", cfg.Client.APIBaseURL).
		Str("store", cfg.Client.StoreID).
		Msg("iniciando cliente de tienda")

	store, err := localstore.New(cfg.Client.StateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento local")
	}

	gw := storefront.NewClient(storefront.Config{
		BaseURL: cfg.Client.APIBaseURL,
		StoreID: cfg.Client.StoreID,
	}, store, log)

	cartEngine := appcart.NewEngine(store, log)
	coordinator := session.NewCoordinator(gw, store, log)
	checkoutUC := checkout.NewUseCase(gw, cartEngine, log)

	ctx := context.Background()

	// Hidratación: carrito y sesión se restauran antes de cualquier acción.
	cartEngine.Hydrate()
	coordinator.Hydrate(ctx)

	sess := coordinator.State()
	if sess.IsAuthenticated {
		log.Info().Str("customer", sess.Customer.Email).Msg("sesión activa")
	} else {
		log.Info().Msg("sesión anónima")
	}

	catalog, err := gw.ListProducts(ctx, dto.ListProductsParams{Limit: 10})
	if err != nil {
		log.Fatal().Err(err).Msg("listar productos")
	}
	log.Info().Int("productos", len(catalog.Products)).Msg("catálogo recibido")

	for _, p := range catalog.Products {
		if !p.InStock {
			continue
		}
		if err := cartEngine.AddProduct(p, 1); err != nil {
			log.Error().Err(err).Str("producto", p.ID).Msg("agregar al carrito")
			continue
		}
		log.Info().
			Str("producto", p.Name).
			Str("precio", p.SellingPrice.String()).
			Str("descuento", p.DiscountPercent().String()+"%").
			Msg("agregado al carrito")
	}

	state := cartEngine.State()
	log.Info().
		Int("items", state.TotalItems).
		Str("total", state.TotalAmount.String()).
		Msg("estado del carrito")

	// Checkout de invitado opcional, activado por env para no ensuciar el
	// backend en cada corrida.
	if os.Getenv("DEMO_CHECKOUT") == "" {
		log.Info().Msg("DEMO_CHECKOUT no definido; fin del recorrido")
		return
	}

	order, err := checkoutUC.PlaceGuestOrder(ctx, "cod", demoGuest())
	if err != nil {
		log.Fatal().Err(err).Msg("colocar pedido de invitado")
	}
	log.Info().Str("pedido", order.OrderNumber).Msg("pedido colocado")

	tracked, err := gw.TrackOrder(ctx, dto.TrackOrderParams{
		OrderNumber: order.OrderNumber,
		Email:       demoGuest().Email,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("rastrear pedido")
	}
	log.Info().Str("estado", tracked.Status).Msg("pedido rastreado")
}

func demoGuest() checkout.GuestInfo {
	return checkout.GuestInfo{
		Name:  "Invitado Demo",
		Email: "invitado@example.com",
		Phone: "3000000000",
		Address: entity.Address{
			Name:    "Invitado Demo",
			Line1:   "Calle 10 # 5-23",
			City:    "Medellín",
			State:   "Antioquia",
			Zip:     "050001",
			Country: "CO",
			Phone:   "3000000000",
		},
	}
}
