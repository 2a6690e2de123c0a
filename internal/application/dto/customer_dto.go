package dto

import "github.com/jhoicas/pyrostore/internal/domain/entity"

// RegisterRequest entrada para registro de cliente (password en texto; el backend hashea).
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida de login: credencial bearer más el perfil del cliente.
type LoginResponse struct {
	Token    string          `json:"token"`
	Customer entity.Customer `json:"customer"`
}

// UpdateProfileRequest actualización parcial del perfil; los campos vacíos no se envían.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CustomerResponse envoltura {customer: ...} que usa el backend en profile y update.
type CustomerResponse struct {
	Customer entity.Customer `json:"customer"`
}

// ForgotPasswordRequest solicita el correo de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consume el token de recuperación.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// MessageResponse respuesta genérica {message: ...}.
type MessageResponse struct {
	Message string `json:"message"`
}
