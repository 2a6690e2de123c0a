// Package session implementa el coordinador de sesión del cliente: máquina de
// estados Unresolved -> {Anonymous, Authenticated}, con login, registro,
// logout y actualización de perfil. Anonymous y Authenticated son
// re-entrantes; no hay estados terminales.
package session

import (
	"context"
	"fmt"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/ports"
	"github.com/jhoicas/pyrostore/internal/domain"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

// Status estado discreto de la sesión.
type Status int

const (
	// StatusUnresolved sesión aún no hidratada (arranque).
	StatusUnresolved Status = iota
	// StatusAnonymous sin cliente autenticado.
	StatusAnonymous
	// StatusAuthenticated con cliente autenticado.
	StatusAuthenticated
)

// State snapshot observable de la sesión.
// Invariante: IsAuthenticated == (Customer != nil) en todo snapshot expuesto.
type State struct {
	Customer        *entity.Customer
	IsAuthenticated bool
	IsLoading       bool
}

// Coordinator dueño del AuthSession. Hidrata la credencial durable al
// arranque, la valida contra el gateway y expone las operaciones que mutan el
// estado compartido de autenticación.
type Coordinator struct {
	gw    ports.StorefrontGateway
	creds ports.KeyValueStore
	log   *logger.Logger
	state State
}

// NewCoordinator construye el coordinador en estado Unresolved (cargando).
func NewCoordinator(gw ports.StorefrontGateway, creds ports.KeyValueStore, log *logger.Logger) *Coordinator {
	return &Coordinator{gw: gw, creds: creds, log: log, state: State{IsLoading: true}}
}

// Hydrate resuelve la sesión al arranque. Si hay credencial durable la valida
// pidiendo el perfil; una credencial rechazada se borra y la sesión cae a
// Anonymous. Nunca retorna error al caller: el fallo de una credencial vieja
// no es un fallo del arranque.
func (c *Coordinator) Hydrate(ctx context.Context) {
	raw, ok, err := c.creds.Get(ports.KeyCredential)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo leer la credencial almacenada")
	}
	if err != nil || !ok || len(raw) == 0 {
		c.setAnonymous()
		return
	}

	customer, err := c.gw.GetProfile(ctx)
	if err != nil {
		// Token inválido o expirado: se descarta la credencial durable y la
		// copia en memoria del gateway, y la sesión queda anónima.
		c.log.Warn().Err(err).Msg("credencial almacenada rechazada por el backend; sesión anónima")
		if lerr := c.gw.Logout(ctx); lerr != nil {
			c.log.Warn().Err(lerr).Msg("limpiar credencial rechazada")
		}
		c.setAnonymous()
		return
	}
	c.setAuthenticated(customer)
	c.log.Info().Str("customer", customer.Email).Msg("sesión restaurada")
}

// Login autentica con email y password. En fallo el estado no cambia y el
// error se propaga al caller; el gateway ya dejó la credencial guardada en éxito.
func (c *Coordinator) Login(ctx context.Context, email, password string) error {
	out, err := c.gw.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	customer := out.Customer
	c.setAuthenticated(&customer)
	return nil
}

// Register registra al cliente y de inmediato hace login con las mismas
// credenciales: el registro por sí solo no autentica.
func (c *Coordinator) Register(ctx context.Context, in dto.RegisterRequest) error {
	if _, err := c.gw.Register(ctx, in); err != nil {
		return err
	}
	return c.Login(ctx, in.Email, in.Password)
}

// Logout borra la credencial (ambas copias, vía gateway) y deja la sesión anónima.
func (c *Coordinator) Logout(ctx context.Context) error {
	err := c.gw.Logout(ctx)
	c.setAnonymous()
	return err
}

// UpdateProfile actualiza el perfil; solo válido en Authenticated. El cliente
// retenido se reemplaza por el que devuelve el servidor.
func (c *Coordinator) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) error {
	if !c.state.IsAuthenticated {
		return fmt.Errorf("actualizar perfil sin sesión: %w", domain.ErrUnauthorized)
	}
	customer, err := c.gw.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	c.setAuthenticated(customer)
	return nil
}

// State devuelve un snapshot de solo lectura de la sesión.
func (c *Coordinator) State() State {
	s := c.state
	if s.Customer != nil {
		cp := *s.Customer
		s.Customer = &cp
	}
	return s
}

// Status deriva el estado discreto del snapshot actual.
func (c *Coordinator) Status() Status {
	switch {
	case c.state.IsLoading:
		return StatusUnresolved
	case c.state.IsAuthenticated:
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

func (c *Coordinator) setAnonymous() {
	c.state = State{}
}

func (c *Coordinator) setAuthenticated(customer *entity.Customer) {
	c.state = State{Customer: customer, IsAuthenticated: true}
}
