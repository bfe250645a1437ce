package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
	RoleCajero  = "cajero"
)

// User representa un usuario del sistema, asignado a un negocio y opcionalmente
// a una sucursal (gerentes y cajeros operan sobre su sucursal asignada).
type User struct {
	ID           string
	BusinessID   string
	BranchID     string // vacío para admin global del negocio
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | gerente | cajero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
