package entity

import "time"

// Business representa un negocio (restaurante o comercio) dueño de sucursales,
// catálogo e inventario.
type Business struct {
	ID        string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
