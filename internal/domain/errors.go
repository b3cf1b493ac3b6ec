package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada operación de negocio retorna uno de estos sentinelas; los handlers
// HTTP los traducen a códigos estables.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Libro de inventario
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidAdjustment = errors.New("ajuste inválido: el stock no puede quedar negativo")
	ErrInvalidTransfer   = errors.New("traslado inválido")
	ErrInvalidQuantity   = errors.New("cantidad inválida")

	// Ciclo de vida de órdenes de compra
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrInvalidTransition = errors.New("transición de estado inválida")

	// Conflicto transitorio de persistencia (ej. colisión de numeración);
	// reintentable por el caller.
	ErrTransientConflict = errors.New("conflicto transitorio, reintentar")
)
