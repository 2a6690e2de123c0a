package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo público de la tienda.
// Para el núcleo cliente es una entidad de solo lectura: el backend es la
// fuente de verdad y aquí solo se conserva el snapshot recibido.
// CurrentStock es nil cuando el stock es desconocido (p. ej. al normalizar
// un item aplanado que no trae metadatos de inventario).
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Brand        string          `json:"brand"`
	SKU          string          `json:"sku"`
	MRP          decimal.Decimal `json:"mrp"`          // precio de lista
	SellingPrice decimal.Decimal `json:"sellingPrice"` // precio de venta
	YoutubeURL   string          `json:"youtubeUrl,omitempty"`
	InStock      bool            `json:"inStock"`
	CurrentStock *int            `json:"currentStock,omitempty"`
	Images       []string        `json:"images,omitempty"`
}

// DiscountPercent deriva el porcentaje de descuento a partir de MRP y precio
// de venta (redondeado a entero). Función pura de visualización: si el precio
// de venta no es menor al MRP, el descuento es 0.
func (p Product) DiscountPercent() decimal.Decimal {
	if p.MRP.IsZero() || p.SellingPrice.GreaterThanOrEqual(p.MRP) {
		return decimal.Zero
	}
	return p.MRP.Sub(p.SellingPrice).
		Div(p.MRP).
		Mul(decimal.NewFromInt(100)).
		Round(0)
}
