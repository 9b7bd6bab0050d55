package entity

import "time"

// Warehouse representa una bodega física donde se almacena material.
type Warehouse struct {
	ID        string
	Name      string
	SiteID    string // sede/localidad a la que pertenece la bodega
	CreatedAt time.Time
	UpdatedAt time.Time
}
