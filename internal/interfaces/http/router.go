// Package http expone el backend de desarrollo (mockapi): una implementación
// Fiber de la superficie REST pública de la tienda contra datos en memoria.
// Es un fixture para ejercitar el núcleo cliente en local, no un diseño de
// servidor productivo.
package http

import "github.com/gofiber/fiber/v2"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store         *MemStore
	StoreID       string
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// Router registra las rutas de la API pública de la tienda.
func Router(app *fiber.App, deps RouterDeps) {
	catalog := NewCatalogHandler(deps.Store)
	orders := NewOrderHandler(deps.Store, deps.JWTSecret, deps.StoreID)
	customers := NewCustomerHandler(deps.Store, deps)
	addresses := NewAddressHandler(deps.Store)

	store := app.Group("/api/public/store/:storeID", requireStore(deps.StoreID))

	// Catálogo (público)
	store.Get("/products", catalog.ListProducts)
	store.Get("/categories", catalog.ListCategories)

	// Pedidos (público; autenticación opcional vía bearer)
	store.Post("/orders", orders.Place)
	store.Get("/orders/track", orders.Track)
	store.Get("/orders/guest-history", orders.GuestHistory)

	// Cuenta de cliente (público)
	store.Post("/customers/register", customers.Register)
	store.Post("/customers/login", customers.Login)
	store.Post("/customers/forgot-password", customers.ForgotPassword)
	store.Post("/customers/reset-password", customers.ResetPassword)

	// Cuenta de cliente (requiere Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret, deps.StoreID)
	store.Get("/customers/profile", auth, customers.Profile)
	store.Put("/customers/profile", auth, customers.UpdateProfile)
	store.Get("/customers/orders", auth, customers.Orders)
	store.Get("/customers/addresses", auth, addresses.List)
	store.Post("/customers/addresses", auth, addresses.Add)
	store.Get("/customers/addresses/:id", auth, addresses.Get)

	// Update y delete de direcciones van sin ámbito de tienda: así las expone
	// el backend real y así las consume el cliente.
	app.Put("/api/public/customers/addresses/:id", auth, addresses.Update)
	app.Delete("/api/public/customers/addresses/:id", auth, addresses.Delete)
}

// requireStore rechaza tiendas distintas a la configurada.
func requireStore(storeID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Params("storeID") != storeID {
			return jsonError(c, fiber.StatusNotFound, "Store not found")
		}
		return c.Next()
	}
}
