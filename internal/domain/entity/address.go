package entity

// Address dirección de entrega del cliente (o de un invitado en checkout).
type Address struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault,omitempty"`
}
