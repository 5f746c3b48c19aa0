// internal/models/product.go
package models

import "time"

// Product is a catalog entry. Imagenes is an ordered list: index 0 is the
// favorite image shown as the primary thumbnail.
type Product struct {
	ID                int               `json:"id"`
	Nombre            string            `json:"nombre"`
	Descripcion       string            `json:"descripcion"`
	Precio            float64           `json:"precio"`
	Categoria         string            `json:"categoria"`
	MarcaID           *int              `json:"marcaId"`
	Stock             int               `json:"stock"`
	Imagenes          []string          `json:"imagenes"`
	Atributos         map[string]string `json:"atributos,omitempty"`
	FechaCreacion     time.Time         `json:"fechaCreacion"`
	FechaModificacion *time.Time        `json:"fechaModificacion,omitempty"`
}

const DefaultCategoria = "General"

// PromoteFavorite moves the image at index i to the front of the list.
// Out-of-range indexes are ignored.
func (p *Product) PromoteFavorite(i int) {
	if i <= 0 || i >= len(p.Imagenes) {
		return
	}
	fav := p.Imagenes[i]
	p.Imagenes = append(p.Imagenes[:i], p.Imagenes[i+1:]...)
	p.Imagenes = append([]string{fav}, p.Imagenes...)
}

// HasImage reports whether ruta is one of the product's images.
func (p *Product) HasImage(ruta string) bool {
	for _, img := range p.Imagenes {
		if img == ruta {
			return true
		}
	}
	return false
}

// NextProductID allocates max(existing)+1, or 1 for an empty collection.
func NextProductID(productos []Product) int {
	next := 1
	for _, p := range productos {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
