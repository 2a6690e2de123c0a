package entity

// CartItem línea del carrito: snapshot del producto más la cantidad elegida.
// La identidad de la línea es Product.ID; nunca hay dos líneas con el mismo
// producto. La forma JSON es la misma que se persiste en el almacenamiento
// local del cliente.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
