package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrDuplicate)
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", ErrUnauthorized)
	ErrInactiveUser       = fmt.Errorf("%w: usuario inactivo", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: token inválido o expirado", ErrUnauthorized)
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrPersistence        = errors.New("error de persistencia")
)

// Invalid envuelve ErrInvalidInput con un mensaje legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando el recurso.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Duplicate envuelve ErrDuplicate indicando el campo repetido.
func Duplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}
