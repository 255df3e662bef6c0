package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrAlreadyFinalized = errors.New("la semana ya está finalizada")
	ErrWeekNotDraft     = errors.New("la semana no está en borrador")
	ErrNoInventoryData  = errors.New("la semana no tiene datos de inventario")
	ErrRecipeCycle      = errors.New("ciclo en las recetas de insumos compuestos")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrEmailTaken       = errors.New("el email ya está registrado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")

	// ErrTxRetryExhausted se devuelve cuando una transacción optimista agota
	// los reintentos por conflictos de serialización. El caller puede reintentar.
	ErrTxRetryExhausted = errors.New("transacción abortada tras agotar reintentos")
)
