package entity

// Customer representa un cliente autenticado de la tienda.
type Customer struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	EmailVerified bool   `json:"emailVerified"`
}
