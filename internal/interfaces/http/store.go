package http

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pyrostore/internal/domain"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
)

// MemStore estado en memoria del backend de desarrollo. No persiste nada:
// existe para poder ejercitar el núcleo cliente sin el backend productivo.
// Fiber atiende en paralelo, así que todo acceso va bajo el mutex.
type MemStore struct {
	mu         sync.Mutex
	products   []entity.Product
	categories []entity.Category
	customers  map[string]*customerRecord // por email (minúsculas)
	byID       map[string]*customerRecord
	addresses  map[string][]entity.Address // por customerID
	orders     []orderRecord
	orderSeq   int
}

type customerRecord struct {
	entity.Customer
	passwordHash []byte
	resetToken   string
}

type orderRecord struct {
	entity.Order
	customerID string // vacío en pedidos de invitado
}

// NewMemStore construye el store sembrado con el catálogo de pirotecnia de demo.
func NewMemStore() *MemStore {
	s := &MemStore{
		customers: make(map[string]*customerRecord),
		byID:      make(map[string]*customerRecord),
		addresses: make(map[string][]entity.Address),
	}
	s.seed()
	return s
}

func intPtr(n int) *int { return &n }

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func (s *MemStore) seed() {
	s.categories = []entity.Category{
		{ID: "cat-voladores", Name: "Voladores"},
		{ID: "cat-fuentes", Name: "Fuentes"},
		{ID: "cat-luces", Name: "Luces de bengala"},
		{ID: "cat-baterias", Name: "Baterías"},
	}
	s.products = []entity.Product{
		{
			ID: "prod-cometa-dorado", Name: "Cometa Dorado 36", Brand: "Chispa",
			SKU: "VOL-036", CategoryID: "cat-voladores", CategoryName: "Voladores",
			Description: "Volador de 36 disparos con cola dorada y apertura en crisantemo.",
			MRP: price("1200"), SellingPrice: price("999"),
			InStock: true, CurrentStock: intPtr(48),
			Images: []string{"/img/cometa-dorado.jpg"},
		},
		{
			ID: "prod-fuente-vulcan", Name: "Fuente Vulcán", Brand: "Chispa",
			SKU: "FUE-012", CategoryID: "cat-fuentes", CategoryName: "Fuentes",
			Description: "Fuente de 90 segundos, chispa plateada de 3 metros.",
			MRP: price("450"), SellingPrice: price("380"),
			InStock: true, CurrentStock: intPtr(120),
			Images: []string{"/img/fuente-vulcan.jpg"},
		},
		{
			ID: "prod-bengala-color", Name: "Bengalas de Colores x12", Brand: "Lumina",
			SKU: "LUZ-112", CategoryID: "cat-luces", CategoryName: "Luces de bengala",
			Description: "Paquete de 12 bengalas surtidas, 45 segundos cada una.",
			MRP: price("150"), SellingPrice: price("129"),
			InStock: true, CurrentStock: intPtr(300),
			Images: []string{"/img/bengala-color.jpg"},
		},
		{
			ID: "prod-bateria-fiesta", Name: "Batería Fiesta 100", Brand: "Chispa",
			SKU: "BAT-100", CategoryID: "cat-baterias", CategoryName: "Baterías",
			Description: "Batería de 100 tiros, secuencia mixta de 80 segundos.",
			MRP: price("3500"), SellingPrice: price("2990"),
			InStock: false, CurrentStock: intPtr(0),
			Images: []string{"/img/bateria-fiesta.jpg"},
		},
	}
}

// FindProducts filtra por categoría (id o nombre) y texto, y pagina.
func (s *MemStore) FindProducts(category, search string, page, limit int) ([]entity.Product, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var matched []entity.Product
	needle := strings.ToLower(search)
	for _, p := range s.products {
		if category != "" && p.CategoryID != category && !strings.EqualFold(p.CategoryName, category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return []entity.Product{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

// Categories devuelve el listado de categorías.
func (s *MemStore) Categories() []entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ProductExists verifica que el producto está en el catálogo.
func (s *MemStore) ProductExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// RegisterCustomer crea el cliente con password hasheado con bcrypt.
func (s *MemStore) RegisterCustomer(email, password, firstName, lastName, phone string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.customers[key]; exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rec := &customerRecord{
		Customer: entity.Customer{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Phone:     phone,
		},
		passwordHash: hash,
	}
	s.customers[key] = rec
	s.byID[rec.ID] = rec
	c := rec.Customer
	return &c, nil
}

// Authenticate verifica email/password y devuelve el cliente.
func (s *MemStore) Authenticate(email, password string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.customers[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	c := rec.Customer
	return &c, nil
}

// GetCustomer devuelve el cliente por id.
func (s *MemStore) GetCustomer(id string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := rec.Customer
	return &c, nil
}

// UpdateCustomer aplica actualización parcial (campos vacíos no cambian).
func (s *MemStore) UpdateCustomer(id, firstName, lastName, phone string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if firstName != "" {
		rec.FirstName = firstName
	}
	if lastName != "" {
		rec.LastName = lastName
	}
	if phone != "" {
		rec.Phone = phone
	}
	c := rec.Customer
	return &c, nil
}

// CreateResetToken genera el token de recuperación; devuelve ErrNotFound si el
// email no existe (el handler responde igual en ambos casos para no filtrar
// qué emails tienen cuenta).
func (s *MemStore) CreateResetToken(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.customers[strings.ToLower(email)]
	if !ok {
		return "", domain.ErrNotFound
	}
	rec.resetToken = uuid.NewString()
	return rec.resetToken, nil
}

// ResetPassword consume el token y fija la contraseña nueva.
func (s *MemStore) ResetPassword(token, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return domain.ErrInvalidInput
	}
	for _, rec := range s.customers {
		if rec.resetToken == token {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			rec.passwordHash = hash
			rec.resetToken = ""
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Direcciones ───────────────────────────────────────────────────────────────

// ListAddresses devuelve las direcciones del cliente.
func (s *MemStore) ListAddresses(customerID string) []entity.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Address, len(s.addresses[customerID]))
	copy(out, s.addresses[customerID])
	return out
}

// AddAddress agrega una dirección con id nuevo.
func (s *MemStore) AddAddress(customerID string, a entity.Address) entity.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	s.addresses[customerID] = append(s.addresses[customerID], a)
	return a
}

// GetAddress devuelve la dirección por id dentro de las del cliente.
func (s *MemStore) GetAddress(customerID, id string) (*entity.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.addresses[customerID] {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateAddress reemplaza los campos no vacíos de la dirección.
func (s *MemStore) UpdateAddress(customerID, id string, in entity.Address) (*entity.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.addresses[customerID]
	for i := range list {
		if list[i].ID == id {
			in.ID = id
			list[i] = in
			cp := list[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteAddress borra la dirección del cliente.
func (s *MemStore) DeleteAddress(customerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.addresses[customerID]
	for i := range list {
		if list[i].ID == id {
			s.addresses[customerID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// PlaceOrder registra el pedido y devuelve su número. customerID vacío marca
// pedido de invitado.
func (s *MemStore) PlaceOrder(customerID string, items []entity.OrderItem, addr entity.Address, guestName, guestEmail, guestPhone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderSeq++
	number := fmt.Sprintf("PY-%06d", s.orderSeq)
	s.orders = append(s.orders, orderRecord{
		Order: entity.Order{
			ID:          uuid.NewString(),
			OrderNumber: number,
			Status:      "pending",
			CreatedAt:   time.Now().UTC(),
			Items:       items,
			Address:     addr,
			GuestName:   guestName,
			GuestEmail:  guestEmail,
			GuestPhone:  guestPhone,
		},
		customerID: customerID,
	})
	return number
}

// TrackOrder busca el pedido por número y valida la identidad con email o
// teléfono (del invitado, o del cliente dueño).
func (s *MemStore) TrackOrder(orderNumber, email, phone string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.orders {
		if rec.OrderNumber != orderNumber {
			continue
		}
		if s.orderMatchesIdentity(rec, email, phone) {
			o := rec.Order
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GuestOrders devuelve los pedidos de invitado que coinciden con email o teléfono.
func (s *MemStore) GuestOrders(email, phone string) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Order
	for _, rec := range s.orders {
		if rec.customerID != "" {
			continue
		}
		if (email != "" && strings.EqualFold(rec.GuestEmail, email)) ||
			(phone != "" && rec.GuestPhone == phone) {
			out = append(out, rec.Order)
		}
	}
	return out
}

// CustomerOrders devuelve los pedidos del cliente autenticado.
func (s *MemStore) CustomerOrders(customerID string) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Order
	for _, rec := range s.orders {
		if rec.customerID == customerID {
			out = append(out, rec.Order)
		}
	}
	return out
}

func (s *MemStore) orderMatchesIdentity(rec orderRecord, email, phone string) bool {
	if rec.customerID == "" {
		return (email != "" && strings.EqualFold(rec.GuestEmail, email)) ||
			(phone != "" && rec.GuestPhone == phone)
	}
	owner, ok := s.byID[rec.customerID]
	if !ok {
		return false
	}
	return (email != "" && strings.EqualFold(owner.Email, email)) ||
		(phone != "" && owner.Phone == phone)
}
