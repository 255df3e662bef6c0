package entity

import "time"

// User usuario de la aplicación. Solo pegamento de autenticación: la identidad
// del caller se usa como FinalizedBy al cerrar una semana.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string // "admin" | "encargado"
	CreatedAt    time.Time
}
