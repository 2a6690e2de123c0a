package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyrostore/internal/application/dto"
	"github.com/jhoicas/pyrostore/internal/application/ports"
	"github.com/jhoicas/pyrostore/internal/application/session"
	"github.com/jhoicas/pyrostore/internal/domain"
	"github.com/jhoicas/pyrostore/internal/domain/entity"
	"github.com/jhoicas/pyrostore/internal/infrastructure/storefront"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway implementa el puerto vía funciones inyectables; un método no
// esperado revienta el test (nil embebido).
type fakeGateway struct {
	ports.StorefrontGateway
	loginFn    func(dto.LoginRequest) (*dto.LoginResponse, error)
	registerFn func(dto.RegisterRequest) (*dto.MessageResponse, error)
	profileFn  func() (*entity.Customer, error)
	updateFn   func(dto.UpdateProfileRequest) (*entity.Customer, error)
	logoutFn   func() error
}

func (f *fakeGateway) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.loginFn(in)
}
func (f *fakeGateway) Register(_ context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error) {
	return f.registerFn(in)
}
func (f *fakeGateway) GetProfile(_ context.Context) (*entity.Customer, error) {
	return f.profileFn()
}
func (f *fakeGateway) UpdateProfile(_ context.Context, in dto.UpdateProfileRequest) (*entity.Customer, error) {
	return f.updateFn(in)
}
func (f *fakeGateway) Logout(_ context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn()
	}
	return nil
}

type mapStore struct{ data map[string][]byte }

func newMapStore() *mapStore { return &mapStore{data: map[string][]byte{}} }

func (m *mapStore) Get(key string) ([]byte, bool, error) { v, ok := m.data[key]; return v, ok, nil }
func (m *mapStore) Set(key string, value []byte) error   { m.data[key] = value; return nil }
func (m *mapStore) Delete(key string) error              { delete(m.data, key); return nil }

func clienteDemo() *entity.Customer {
	return &entity.Customer{ID: "c1", Email: "ana@example.com", FirstName: "Ana"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hidratación
// ──────────────────────────────────────────────────────────────────────────────

// TestCoordinator_HydrateSinCredencial sin credencial durable la sesión cae
// directo a Anonymous.
func TestCoordinator_HydrateSinCredencial(t *testing.T) {
	gw := &fakeGateway{profileFn: func() (*entity.Customer, error) {
		t.Fatal("sin credencial no debe consultarse el perfil")
		return nil, nil
	}}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	require.Equal(t, session.StatusUnresolved, c.Status(), "antes de hidratar la sesión está sin resolver")

	c.Hydrate(context.Background())

	assert.Equal(t, session.StatusAnonymous, c.Status())
	s := c.State()
	assert.False(t, s.IsLoading)
	assert.Nil(t, s.Customer)
}

// TestCoordinator_HydrateCredencialValida credencial durable aceptada: Authenticated.
func TestCoordinator_HydrateCredencialValida(t *testing.T) {
	creds := newMapStore()
	require.NoError(t, creds.Set(ports.KeyCredential, []byte("tok-valido")))

	gw := &fakeGateway{profileFn: func() (*entity.Customer, error) { return clienteDemo(), nil }}
	c := session.NewCoordinator(gw, creds, logger.Nop())
	c.Hydrate(context.Background())

	assert.Equal(t, session.StatusAuthenticated, c.Status())
	s := c.State()
	require.NotNil(t, s.Customer)
	assert.Equal(t, "ana@example.com", s.Customer.Email)
	assert.True(t, s.IsAuthenticated)
}

// TestCoordinator_HydrateCredencialRechazada una credencial que el backend
// rechaza (401) se borra; la sesión queda Anonymous y ningún error escapa.
func TestCoordinator_HydrateCredencialRechazada(t *testing.T) {
	creds := newMapStore()
	require.NoError(t, creds.Set(ports.KeyCredential, []byte("tok-vencido")))

	logoutLlamado := false
	gw := &fakeGateway{
		profileFn: func() (*entity.Customer, error) {
			return nil, &storefront.APIError{Status: 401, Message: "Invalid or expired token"}
		},
		logoutFn: func() error {
			logoutLlamado = true
			return nil
		},
	}
	c := session.NewCoordinator(gw, creds, logger.Nop())

	require.NotPanics(t, func() { c.Hydrate(context.Background()) },
		"una credencial vieja rechazada jamás debe tumbar el arranque")

	assert.Equal(t, session.StatusAnonymous, c.Status())
	assert.True(t, logoutLlamado, "la credencial rechazada debe limpiarse vía gateway")
	s := c.State()
	assert.Nil(t, s.Customer)
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / registro / logout / perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestCoordinator_LoginExitoso(t *testing.T) {
	gw := &fakeGateway{loginFn: func(in dto.LoginRequest) (*dto.LoginResponse, error) {
		return &dto.LoginResponse{Token: "tok", Customer: *clienteDemo()}, nil
	}}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())

	require.NoError(t, c.Login(context.Background(), "ana@example.com", "secreta123"))
	assert.Equal(t, session.StatusAuthenticated, c.Status())
}

// TestCoordinator_LoginFallido en fallo el error se propaga y el estado no cambia.
func TestCoordinator_LoginFallido(t *testing.T) {
	gw := &fakeGateway{loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
		return nil, &storefront.APIError{Status: 401, Message: "Invalid email or password"}
	}}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())

	err := c.Login(context.Background(), "ana@example.com", "mala")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid email or password")
	assert.Equal(t, session.StatusAnonymous, c.Status(), "el estado no cambia en login fallido")
}

// TestCoordinator_RegisterHaceLoginInterno registrar dispara un login interno
// con las mismas credenciales: Authenticated sin segundo login explícito.
func TestCoordinator_RegisterHaceLoginInterno(t *testing.T) {
	var loginVisto dto.LoginRequest
	gw := &fakeGateway{
		registerFn: func(in dto.RegisterRequest) (*dto.MessageResponse, error) {
			return &dto.MessageResponse{Message: "Registration successful"}, nil
		},
		loginFn: func(in dto.LoginRequest) (*dto.LoginResponse, error) {
			loginVisto = in
			return &dto.LoginResponse{Token: "tok", Customer: *clienteDemo()}, nil
		},
	}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())

	err := c.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, session.StatusAuthenticated, c.Status())
	assert.Equal(t, "ana@example.com", loginVisto.Email, "el login interno usa el mismo email")
	assert.Equal(t, "secreta123", loginVisto.Password, "el login interno usa el mismo password")
}

// TestCoordinator_RegisterFallido si el registro falla no se intenta login.
func TestCoordinator_RegisterFallido(t *testing.T) {
	gw := &fakeGateway{
		registerFn: func(dto.RegisterRequest) (*dto.MessageResponse, error) {
			return nil, &storefront.APIError{Status: 409, Message: "Email already exists"}
		},
		loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
			t.Fatal("con registro fallido no debe intentarse login")
			return nil, nil
		},
	}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())

	err := c.Register(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "x"})
	assert.EqualError(t, err, "Email already exists")
	assert.Equal(t, session.StatusAnonymous, c.Status())
}

func TestCoordinator_Logout(t *testing.T) {
	gw := &fakeGateway{loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
		return &dto.LoginResponse{Token: "tok", Customer: *clienteDemo()}, nil
	}}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "ana@example.com", "x"))

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, session.StatusAnonymous, c.Status())
	assert.Nil(t, c.State().Customer)
}

// TestCoordinator_UpdateProfile reemplaza el cliente retenido con el del servidor.
func TestCoordinator_UpdateProfile(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
			return &dto.LoginResponse{Token: "tok", Customer: *clienteDemo()}, nil
		},
		updateFn: func(in dto.UpdateProfileRequest) (*entity.Customer, error) {
			actualizado := *clienteDemo()
			actualizado.FirstName = in.FirstName
			return &actualizado, nil
		},
	}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "ana@example.com", "x"))

	require.NoError(t, c.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FirstName: "Anita"}))
	assert.Equal(t, session.StatusAuthenticated, c.Status(), "la sesión sigue autenticada")
	assert.Equal(t, "Anita", c.State().Customer.FirstName, "el cliente retenido es el del servidor")
}

// TestCoordinator_UpdateProfileSinSesion solo válido en Authenticated.
func TestCoordinator_UpdateProfileSinSesion(t *testing.T) {
	c := session.NewCoordinator(&fakeGateway{}, newMapStore(), logger.Nop())
	c.Hydrate(context.Background())

	err := c.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FirstName: "Anita"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

// TestCoordinator_InvarianteSnapshot IsAuthenticated == (Customer != nil) en
// todo snapshot expuesto, a lo largo del ciclo de vida completo.
func TestCoordinator_InvarianteSnapshot(t *testing.T) {
	gw := &fakeGateway{loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
		return &dto.LoginResponse{Token: "tok", Customer: *clienteDemo()}, nil
	}}
	c := session.NewCoordinator(gw, newMapStore(), logger.Nop())

	verificar := func() {
		s := c.State()
		assert.Equal(t, s.Customer != nil, s.IsAuthenticated,
			"IsAuthenticated debe equivaler a Customer != nil")
	}

	verificar()
	c.Hydrate(context.Background())
	verificar()
	require.NoError(t, c.Login(context.Background(), "ana@example.com", "x"))
	verificar()
	require.NoError(t, c.Logout(context.Background()))
	verificar()
}
