package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateName      = errors.New("nombre duplicado en el negocio")
	ErrUnknownItem        = errors.New("ítem no existe en el catálogo")
	ErrUnknownIngredient  = errors.New("ingrediente no existe en el catálogo")
	ErrUnitMismatch       = errors.New("unidad de la línea no coincide con la unidad canónica del ingrediente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
