package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	pkgjwt "github.com/jhoicas/pyrostore/pkg/jwt"
)

const localCustomerID = "customerID"

// errorBody forma de error de la API pública: {"error": "..."}.
// El gateway del cliente parsea exactamente este campo.
type errorBody struct {
	Error string `json:"error"`
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody{Error: msg})
}

// AuthMiddleware exige un bearer token válido emitido para esta tienda y deja
// el customerID en locals.
func AuthMiddleware(secret, storeID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, ok := bearerCustomer(c, secret, storeID)
		if !ok {
			return jsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals(localCustomerID, customerID)
		return c.Next()
	}
}

// bearerCustomer parsea el header Authorization si está presente y es válido.
// Lo usan tanto el middleware como las rutas de autenticación opcional (orders).
func bearerCustomer(c *fiber.Ctx, secret, storeID string) (string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	customerID, tokenStore, _, err := pkgjwt.Parse(secret, strings.TrimPrefix(h, "Bearer "))
	if err != nil || tokenStore != storeID {
		return "", false
	}
	return customerID, true
}

// CustomerID devuelve el customerID dejado por AuthMiddleware.
func CustomerID(c *fiber.Ctx) string {
	v, _ := c.Locals(localCustomerID).(string)
	return v
}
