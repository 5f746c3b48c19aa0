// internal/services/brand_service.go
package services

import (
	"strings"
	"time"

	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
)

type BrandService struct {
	db      *store.Store
	storage *StorageService
}

type CreateBrandRequest struct {
	Nombre      string
	Descripcion string
	Logo        *string // already-stored path
}

type UpdateBrandRequest struct {
	Nombre      *string
	Descripcion *string
	Logo        *string
}

func NewBrandService(db *store.Store, storage *StorageService) *BrandService {
	return &BrandService{db: db, storage: storage}
}

func (s *BrandService) List() ([]models.Brand, error) {
	marcas, err := store.Read[[]models.Brand](s.db, store.ColMarcas)
	if err != nil {
		return nil, err
	}
	if marcas == nil {
		marcas = []models.Brand{}
	}
	return marcas, nil
}

func (s *BrandService) GetByID(id int) (*models.Brand, error) {
	marcas, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range marcas {
		if marcas[i].ID == id {
			return &marcas[i], nil
		}
	}
	return nil, models.NewNotFoundError("Marca no encontrada")
}

func (s *BrandService) Create(req *CreateBrandRequest) (*models.Brand, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, models.NewValidationError("El nombre de la marca es obligatorio")
	}

	var created models.Brand
	err := store.Update(s.db, store.ColMarcas, func(marcas []models.Brand) ([]models.Brand, error) {
		if nameTaken(marcas, req.Nombre, 0) {
			return nil, models.NewConflictError("Ya existe una marca con ese nombre")
		}
		created = models.Brand{
			ID:            models.NextBrandID(marcas),
			Nombre:        strings.TrimSpace(req.Nombre),
			Descripcion:   req.Descripcion,
			Logo:          req.Logo,
			FechaCreacion: time.Now(),
		}
		return append(marcas, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *BrandService) Update(id int, req *UpdateBrandRequest) (*models.Brand, error) {
	var updated models.Brand
	var obsoleteLogo string
	err := store.Update(s.db, store.ColMarcas, func(marcas []models.Brand) ([]models.Brand, error) {
		idx := -1
		for i := range marcas {
			if marcas[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, models.NewNotFoundError("Marca no encontrada")
		}
		m := marcas[idx]

		if req.Nombre != nil && strings.TrimSpace(*req.Nombre) != "" {
			if nameTaken(marcas, *req.Nombre, id) {
				return nil, models.NewConflictError("Ya existe una marca con ese nombre")
			}
			m.Nombre = strings.TrimSpace(*req.Nombre)
		}
		if req.Descripcion != nil {
			m.Descripcion = *req.Descripcion
		}
		if req.Logo != nil {
			if m.Logo != nil {
				obsoleteLogo = *m.Logo
			}
			m.Logo = req.Logo
		}

		now := time.Now()
		m.FechaModificacion = &now
		marcas[idx] = m
		updated = m
		return marcas, nil
	})
	if err != nil {
		return nil, err
	}

	s.storage.Delete(obsoleteLogo)
	return &updated, nil
}

// Delete removes a brand unless any product still references it. The
// referential check runs inside the brand critical section; lock order is
// always marcas then productos, product operations never nest the other way.
func (s *BrandService) Delete(id int) (*models.Brand, error) {
	var deleted models.Brand
	err := store.Update(s.db, store.ColMarcas, func(marcas []models.Brand) ([]models.Brand, error) {
		idx := -1
		for i := range marcas {
			if marcas[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, models.NewNotFoundError("Marca no encontrada")
		}

		productos, err := store.Read[[]models.Product](s.db, store.ColProductos)
		if err != nil {
			return nil, err
		}
		for _, p := range productos {
			if p.MarcaID != nil && *p.MarcaID == id {
				return nil, models.NewConflictError("No se puede eliminar la marca porque tiene productos asociados")
			}
		}

		deleted = marcas[idx]
		return append(marcas[:idx], marcas[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}

	if deleted.Logo != nil {
		s.storage.Delete(*deleted.Logo)
	}
	return &deleted, nil
}

// nameTaken checks case-insensitive uniqueness, ignoring the brand with
// excludeID (0 matches no brand).
func nameTaken(marcas []models.Brand, nombre string, excludeID int) bool {
	normalized := strings.ToLower(strings.TrimSpace(nombre))
	for _, m := range marcas {
		if m.ID != excludeID && strings.ToLower(m.Nombre) == normalized {
			return true
		}
	}
	return false
}
