package entity

import "time"

// Category representa una categoría de productos del menú.
type Category struct {
	ID         string
	BusinessID string
	Name       string
	Status     string // active, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
