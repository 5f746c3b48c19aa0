// internal/services/settings_service.go
package services

import (
	"time"

	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

type SettingsService struct {
	db *store.Store
}

// UpdateSettingsRequest carries top-level sections to overwrite; sections
// left nil keep their stored value (shallow merge).
type UpdateSettingsRequest struct {
	Moneda  *MonedaRequest  `json:"moneda"`
	Formato *FormatoRequest `json:"formato"`
}

type MonedaRequest struct {
	Simbolo  string `json:"simbolo" validate:"required"`
	Codigo   string `json:"codigo" validate:"required"`
	Nombre   string `json:"nombre" validate:"required"`
	Posicion string `json:"posicion" validate:"required,oneof=antes despues"`
}

type FormatoRequest struct {
	Decimales        int    `json:"decimales" validate:"min=0,max=4"`
	SeparadorMiles   string `json:"separadorMiles"`
	SeparadorDecimal string `json:"separadorDecimal" validate:"required"`
}

func NewSettingsService(db *store.Store) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the configuration, creating it with defaults on first read.
func (s *SettingsService) Get() (models.Settings, error) {
	settings, err := store.Read[models.Settings](s.db, store.ColConfiguracion)
	if err != nil {
		return models.Settings{}, err
	}
	if !settings.IsZero() {
		return settings, nil
	}

	defaults := models.DefaultSettings()
	err = store.Update(s.db, store.ColConfiguracion, func(current models.Settings) (models.Settings, error) {
		if !current.IsZero() {
			defaults = current
			return current, nil
		}
		return defaults, nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return defaults, nil
}

func (s *SettingsService) Update(req *UpdateSettingsRequest) (models.Settings, error) {
	if req.Moneda == nil && req.Formato == nil {
		return models.Settings{}, models.NewValidationError("Debe especificar al menos una sección (moneda o formato)")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return models.Settings{}, models.NewValidationError("Configuración inválida")
	}

	var result models.Settings
	err := store.Update(s.db, store.ColConfiguracion, func(current models.Settings) (models.Settings, error) {
		if current.IsZero() {
			current = models.DefaultSettings()
		}
		if req.Moneda != nil {
			current.Moneda = models.Moneda{
				Simbolo:  req.Moneda.Simbolo,
				Codigo:   req.Moneda.Codigo,
				Nombre:   req.Moneda.Nombre,
				Posicion: req.Moneda.Posicion,
			}
		}
		if req.Formato != nil {
			current.Formato = models.Formato{
				Decimales:        req.Formato.Decimales,
				SeparadorMiles:   req.Formato.SeparadorMiles,
				SeparadorDecimal: req.Formato.SeparadorDecimal,
			}
		}
		current.Aplicacion.UltimaActualizacion = time.Now()
		result = current
		return current, nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return result, nil
}
