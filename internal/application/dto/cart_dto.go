package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// QuickAddItem variante aplanada del add-to-cart: lo mínimo que una tarjeta de
// producto necesita para agregar al carrito sin el Product completo (sin
// categoría, marca ni SKU). Se normaliza UNA sola vez en el borde a un
// snapshot de Product canónico; el motor del carrito nunca ve esta forma.
type QuickAddItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	MRP      decimal.Decimal `json:"mrp"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
	InStock  bool            `json:"inStock"`
}

// ToProduct normaliza al snapshot canónico. El stock queda explícitamente
// desconocido (CurrentStock nil): esta forma no trae metadatos de inventario
// y no se inventa un centinela numérico.
func (q QuickAddItem) ToProduct() entity.Product {
	p := entity.Product{
		ID:           q.ID,
		Name:         q.Name,
		MRP:          q.MRP,
		SellingPrice: q.Price,
		InStock:      q.InStock,
	}
	if q.Image != "" {
		p.Images = []string{q.Image}
	}
	return p
}
