package entity

import "time"

// Branch representa una sucursal del negocio. El stock se maneja por sucursal.
type Branch struct {
	ID         string
	BusinessID string
	Name       string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
