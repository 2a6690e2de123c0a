// Package cart expone el motor del carrito: el reducer puro del dominio más
// la envoltura imperativa de persistencia. El motor es el único dueño del
// CartState; la UI recibe snapshots de solo lectura y muta únicamente a través
// de los métodos de despacho. El carrito nunca llama al gateway: la mutación
// es local hasta el checkout explícito.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/ports"
	"github.com/jhoicas/pyrostore/internal/domain"
	cartdomain "github.com/jhoicas/pyrostore/internal/domain/cart"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

// Engine motor del carrito con persistencia.
type Engine struct {
	store ports.KeyValueStore
	log   *logger.Logger
	state cartdomain.State
}

// NewEngine construye el motor con un carrito vacío. Llamar Hydrate antes de
// cualquier acción de usuario para restaurar el carrito guardado.
func NewEngine(store ports.KeyValueStore, log *logger.Logger) *Engine {
	return &Engine{store: store, log: log, state: cartdomain.NewState()}
}

// Hydrate restaura la secuencia de líneas persistida, si existe y es
// parseable. Un fallo de lectura o de parseo se registra y se trata como
// "no hay carrito guardado"; nunca es fatal.
func (e *Engine) Hydrate() {
	raw, ok, err := e.store.Get(ports.KeyCart)
	if err != nil {
		e.log.Warn().Err(err).Msg("no se pudo leer el carrito guardado; se parte de un carrito vacío")
		return
	}
	if !ok {
		return
	}
	var items []entity.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		e.log.Warn().Err(err).Msg("carrito guardado ilegible; se parte de un carrito vacío")
		return
	}
	e.state = cartdomain.Reduce(e.state, cartdomain.Load{Items: items})
	e.log.Debug().Int("items", e.state.TotalItems).Msg("carrito restaurado")
}

// AddProduct agrega quantity unidades del producto (merge si ya existe la línea).
// El motor no valida contra Product.CurrentStock: esa validación pertenece al
// caller. quantity <= 0 es una precondición violada.
func (e *Engine) AddProduct(p entity.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("cantidad %d: %w", quantity, domain.ErrInvalidInput)
	}
	e.apply(cartdomain.AddItem{Product: p, Quantity: quantity})
	return nil
}

// AddQuick agrega vía la variante aplanada, normalizándola una sola vez al
// snapshot canónico de Product (stock desconocido) antes de tocar el estado.
func (e *Engine) AddQuick(in dto.QuickAddItem) error {
	return e.AddProduct(in.ToProduct(), in.Quantity)
}

// Remove elimina la línea del producto; no-op si no existe.
func (e *Engine) Remove(productID string) {
	e.apply(cartdomain.RemoveItem{ProductID: productID})
}

// SetQuantity fija la cantidad de la línea; <= 0 equivale a Remove.
func (e *Engine) SetQuantity(productID string, quantity int) {
	e.apply(cartdomain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// Clear vacía el carrito.
func (e *Engine) Clear() {
	e.apply(cartdomain.Clear{})
}

// Open, Close y Toggle mutan solo la visibilidad del drawer.
// La visibilidad no se persiste: solo los cambios de líneas tocan el storage.
func (e *Engine) Open()   { e.state = cartdomain.Reduce(e.state, cartdomain.Open{}) }
func (e *Engine) Close()  { e.state = cartdomain.Reduce(e.state, cartdomain.Close{}) }
func (e *Engine) Toggle() { e.state = cartdomain.Reduce(e.state, cartdomain.Toggle{}) }

// State devuelve un snapshot de solo lectura del estado actual.
func (e *Engine) State() cartdomain.State {
	s := e.state
	if s.Items != nil {
		items := make([]entity.CartItem, len(s.Items))
		copy(items, s.Items)
		s.Items = items
	}
	return s
}

// apply despacha una acción que muta líneas y persiste la secuencia resultante.
func (e *Engine) apply(a cartdomain.Action) {
	e.state = cartdomain.Reduce(e.state, a)
	e.persist()
}

func (e *Engine) persist() {
	items := e.state.Items
	if items == nil {
		items = []entity.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		e.log.Error().Err(err).Msg("serializar carrito")
		return
	}
	if err := e.store.Set(ports.KeyCart, raw); err != nil {
		// El carrito sigue siendo usable en memoria; solo se pierde durabilidad.
		e.log.Error().Err(err).Msg("persistir carrito")
	}
}
