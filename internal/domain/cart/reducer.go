// Package cart implementa la máquina de estados del carrito de compras como
// un reducer puro: Reduce(estado, acción) -> estado nuevo, sin efectos.
// La persistencia y el logging viven en internal/application/cart; aquí solo
// hay transiciones deterministas, lo que permite testear el carrito sin
// ningún arnés de UI ni de red.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// State estado completo del carrito.
//
// Invariantes:
//   - A lo sumo una línea por Product.ID; el orden de Items es el orden de inserción.
//   - TotalItems y TotalAmount son SIEMPRE la reducción exacta de Items: se
//     recalculan por reducción completa tras cada mutación de líneas, nunca se
//     parchean incrementalmente, de modo que no pueden divergir de Items.
//   - TotalAmount usa el precio de venta del snapshot guardado en cada línea,
//     no un precio vivo: un cambio de precio en el backend después del
//     add-to-cart no afecta un carrito existente (staleness documentado).
type State struct {
	Items       []entity.CartItem
	TotalItems  int
	TotalAmount decimal.Decimal
	IsOpen      bool
}

// NewState devuelve el estado inicial: carrito vacío y cerrado.
func NewState() State {
	return State{TotalAmount: decimal.Zero}
}

// ── Acciones ──────────────────────────────────────────────────────────────────

// Action variante etiquetada sobre las transiciones válidas del carrito.
type Action interface {
	isCartAction()
}

// AddItem agrega Quantity unidades del producto. Si ya existe una línea con el
// mismo Product.ID la cantidad se suma (merge) conservando el snapshot ya
// guardado; si no, la línea se agrega al final. El reducer asume Quantity >= 1:
// la validación de entrada es responsabilidad del borde (application/cart).
type AddItem struct {
	Product  entity.Product
	Quantity int
}

// RemoveItem elimina la línea del producto; no-op si no existe.
type RemoveItem struct {
	ProductID string
}

// SetQuantity reemplaza la cantidad de la línea. Quantity <= 0 equivale
// exactamente a RemoveItem; no-op si la línea no existe.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// Clear vacía el carrito.
type Clear struct{}

// Open, Close y Toggle mutan solo la visibilidad del drawer; nunca tocan Items.
type Open struct{}
type Close struct{}
type Toggle struct{}

// Load reemplaza la secuencia completa de líneas (hidratación desde el
// almacenamiento local, una vez al arranque) y recalcula los totales.
type Load struct {
	Items []entity.CartItem
}

func (AddItem) isCartAction()     {}
func (RemoveItem) isCartAction()  {}
func (SetQuantity) isCartAction() {}
func (Clear) isCartAction()       {}
func (Open) isCartAction()        {}
func (Close) isCartAction()       {}
func (Toggle) isCartAction()      {}
func (Load) isCartAction()        {}

// ── Reducer ───────────────────────────────────────────────────────────────────

// Reduce aplica la acción y devuelve el estado resultante. Total y
// determinista: una acción desconocida devuelve el estado sin cambios.
// Nunca muta el estado recibido; las mutaciones de líneas copian el slice.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		idx := indexOf(s.Items, a.Product.ID)
		items := make([]entity.CartItem, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		if idx >= 0 {
			// Merge: se conserva el snapshot existente, solo crece la cantidad.
			items[idx].Quantity += a.Quantity
		} else {
			items = append(items, entity.CartItem{Product: a.Product, Quantity: a.Quantity})
		}
		return withItems(s, items)

	case RemoveItem:
		return reduceRemove(s, a.ProductID)

	case SetQuantity:
		if a.Quantity <= 0 {
			return reduceRemove(s, a.ProductID)
		}
		idx := indexOf(s.Items, a.ProductID)
		if idx < 0 {
			return s
		}
		items := make([]entity.CartItem, len(s.Items))
		copy(items, s.Items)
		items[idx].Quantity = a.Quantity
		return withItems(s, items)

	case Clear:
		return withItems(s, nil)

	case Open:
		s.IsOpen = true
		return s
	case Close:
		s.IsOpen = false
		return s
	case Toggle:
		s.IsOpen = !s.IsOpen
		return s

	case Load:
		items := make([]entity.CartItem, len(a.Items))
		copy(items, a.Items)
		return withItems(s, items)
	}
	return s
}

func reduceRemove(s State, productID string) State {
	idx := indexOf(s.Items, productID)
	if idx < 0 {
		return s
	}
	items := make([]entity.CartItem, 0, len(s.Items)-1)
	items = append(items, s.Items[:idx]...)
	items = append(items, s.Items[idx+1:]...)
	return withItems(s, items)
}

// withItems fija la nueva secuencia de líneas y recalcula los totales por
// reducción completa sobre Items.
func withItems(s State, items []entity.CartItem) State {
	total := 0
	amount := decimal.Zero
	for _, it := range items {
		total += it.Quantity
		amount = amount.Add(it.Product.SellingPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	s.Items = items
	s.TotalItems = total
	s.TotalAmount = amount
	return s
}

func indexOf(items []entity.CartItem, productID string) int {
	for i, it := range items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
