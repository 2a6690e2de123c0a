package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredential  = errors.New("credencial almacenada inválida")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)
