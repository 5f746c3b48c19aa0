// internal/services/product_service.go
package services

import (
	"fmt"
	"time"

	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
)

type ProductService struct {
	db      *store.Store
	storage *StorageService
}

type CreateProductRequest struct {
	Nombre      string
	Descripcion string
	Precio      float64
	Categoria   string
	MarcaID     *int
	Stock       int
	Atributos   map[string]string
	// Imagenes are already-stored paths; IndiceFavorita designates which of
	// them becomes element 0.
	Imagenes       []string
	IndiceFavorita *int
}

type UpdateProductRequest struct {
	Nombre      *string
	Descripcion *string
	Precio      *float64
	Categoria   *string
	MarcaID     *int
	MarcaSet    bool // distinguishes "clear marca" from "leave as is"
	Stock       *int
	Atributos   map[string]string
	// NuevaImagen replaces the favorite (index 0); EliminarImagen clears it.
	NuevaImagen    *string
	EliminarImagen bool
}

func NewProductService(db *store.Store, storage *StorageService) *ProductService {
	return &ProductService{db: db, storage: storage}
}

func (s *ProductService) List() ([]models.Product, error) {
	productos, err := store.Read[[]models.Product](s.db, store.ColProductos)
	if err != nil {
		return nil, err
	}
	if productos == nil {
		productos = []models.Product{}
	}
	return productos, nil
}

func (s *ProductService) GetByID(id int) (*models.Product, error) {
	productos, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range productos {
		if productos[i].ID == id {
			return &productos[i], nil
		}
	}
	return nil, models.NewNotFoundError("Producto no encontrado")
}

// validateMarcaID checks the referenced brand exists. It reads the brand
// collection outside the product lock so product and brand operations never
// hold both locks at once in this direction.
func (s *ProductService) validateMarcaID(marcaID *int) error {
	if marcaID == nil {
		return nil
	}
	marcas, err := store.Read[[]models.Brand](s.db, store.ColMarcas)
	if err != nil {
		return err
	}
	for _, m := range marcas {
		if m.ID == *marcaID {
			return nil
		}
	}
	return models.NewValidationError("La marca especificada no existe")
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if req.Nombre == "" {
		return nil, models.NewValidationError("Nombre y precio son obligatorios")
	}
	if req.Precio < 0 {
		return nil, models.NewValidationError("El precio no puede ser negativo")
	}
	if req.Stock < 0 {
		return nil, models.NewValidationError("El stock no puede ser negativo")
	}
	if err := s.validateMarcaID(req.MarcaID); err != nil {
		return nil, err
	}

	categoria := req.Categoria
	if categoria == "" {
		categoria = models.DefaultCategoria
	}
	imagenes := req.Imagenes
	if imagenes == nil {
		imagenes = []string{}
	}

	var created models.Product
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		created = models.Product{
			ID:            models.NextProductID(productos),
			Nombre:        req.Nombre,
			Descripcion:   req.Descripcion,
			Precio:        req.Precio,
			Categoria:     categoria,
			MarcaID:       req.MarcaID,
			Stock:         req.Stock,
			Imagenes:      imagenes,
			Atributos:     req.Atributos,
			FechaCreacion: time.Now(),
		}
		if req.IndiceFavorita != nil {
			created.PromoteFavorite(*req.IndiceFavorita)
		}
		return append(productos, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

func (s *ProductService) Update(id int, req *UpdateProductRequest) (*models.Product, error) {
	if req.Precio != nil && *req.Precio < 0 {
		return nil, models.NewValidationError("El precio no puede ser negativo")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, models.NewValidationError("El stock no puede ser negativo")
	}
	if req.MarcaSet {
		if err := s.validateMarcaID(req.MarcaID); err != nil {
			return nil, err
		}
	}

	var updated models.Product
	var obsolete []string
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		idx := indexOfProduct(productos, id)
		if idx == -1 {
			return nil, models.NewNotFoundError("Producto no encontrado")
		}
		p := productos[idx]

		if req.Nombre != nil {
			p.Nombre = *req.Nombre
		}
		if req.Descripcion != nil {
			p.Descripcion = *req.Descripcion
		}
		if req.Precio != nil {
			p.Precio = *req.Precio
		}
		if req.Categoria != nil && *req.Categoria != "" {
			p.Categoria = *req.Categoria
		}
		if req.MarcaSet {
			p.MarcaID = req.MarcaID
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.Atributos != nil {
			p.Atributos = req.Atributos
		}

		if req.EliminarImagen && len(p.Imagenes) > 0 {
			obsolete = append(obsolete, p.Imagenes[0])
			p.Imagenes = p.Imagenes[1:]
		}
		if req.NuevaImagen != nil {
			if len(p.Imagenes) > 0 {
				obsolete = append(obsolete, p.Imagenes[0])
				p.Imagenes[0] = *req.NuevaImagen
			} else {
				p.Imagenes = []string{*req.NuevaImagen}
			}
		}

		now := time.Now()
		p.FechaModificacion = &now
		productos[idx] = p
		updated = p
		return productos, nil
	})
	if err != nil {
		return nil, err
	}

	s.storage.DeleteAll(obsolete)
	return &updated, nil
}

func (s *ProductService) Delete(id int) (*models.Product, error) {
	var deleted models.Product
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		idx := indexOfProduct(productos, id)
		if idx == -1 {
			return nil, models.NewNotFoundError("Producto no encontrado")
		}
		deleted = productos[idx]
		return append(productos[:idx], productos[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}

	s.storage.DeleteAll(deleted.Imagenes)
	return &deleted, nil
}

// AddImages appends already-stored paths to the product's image list.
// favoriteIndex, when set, indexes into the newly added images and promotes
// that one to element 0.
func (s *ProductService) AddImages(id int, rutas []string, favoriteIndex *int) (*models.Product, error) {
	var updated models.Product
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		idx := indexOfProduct(productos, id)
		if idx == -1 {
			return nil, models.NewNotFoundError("Producto no encontrado")
		}
		p := productos[idx]

		offset := len(p.Imagenes)
		p.Imagenes = append(p.Imagenes, rutas...)
		if favoriteIndex != nil && *favoriteIndex >= 0 && *favoriteIndex < len(rutas) {
			p.PromoteFavorite(offset + *favoriteIndex)
		}

		now := time.Now()
		p.FechaModificacion = &now
		productos[idx] = p
		updated = p
		return productos, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReorderImages replaces the whole ordered list. The caller's order is
// trusted entirely; element 0 becomes the favorite.
func (s *ProductService) ReorderImages(id int, imagenes []string) (*models.Product, error) {
	if imagenes == nil {
		return nil, models.NewValidationError("El campo imagenes debe ser un arreglo")
	}

	var updated models.Product
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		idx := indexOfProduct(productos, id)
		if idx == -1 {
			return nil, models.NewNotFoundError("Producto no encontrado")
		}
		p := productos[idx]
		p.Imagenes = imagenes

		now := time.Now()
		p.FechaModificacion = &now
		productos[idx] = p
		updated = p
		return productos, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProductService) RemoveImage(id int, ruta string) (*models.Product, error) {
	var updated models.Product
	err := store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		idx := indexOfProduct(productos, id)
		if idx == -1 {
			return nil, models.NewNotFoundError("Producto no encontrado")
		}
		p := productos[idx]
		if !p.HasImage(ruta) {
			return nil, models.NewNotFoundError("Imagen no encontrada en el producto")
		}

		imagenes := make([]string, 0, len(p.Imagenes)-1)
		for _, img := range p.Imagenes {
			if img != ruta {
				imagenes = append(imagenes, img)
			}
		}
		p.Imagenes = imagenes

		now := time.Now()
		p.FechaModificacion = &now
		productos[idx] = p
		updated = p
		return productos, nil
	})
	if err != nil {
		return nil, err
	}

	s.storage.Delete(ruta)
	return &updated, nil
}

func indexOfProduct(productos []models.Product, id int) int {
	for i := range productos {
		if productos[i].ID == id {
			return i
		}
	}
	return -1
}
