// internal/models/brand.go
package models

import "time"

// Brand groups products under a manufacturer name. Nombre is unique
// case-insensitively across the collection.
type Brand struct {
	ID                int        `json:"id"`
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion"`
	Logo              *string    `json:"logo"`
	FechaCreacion     time.Time  `json:"fechaCreacion"`
	FechaModificacion *time.Time `json:"fechaModificacion,omitempty"`
}

// NextBrandID allocates max(existing)+1, or 1 for an empty collection.
func NextBrandID(marcas []Brand) int {
	next := 1
	for _, m := range marcas {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}
