// internal/store/migrate.go
package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalogo-backend/internal/models"
)

// Earlier releases stored a single "imagen" string per product, image lists
// with object entries, and a free-text "marca" name instead of a brand id.
// MigrateProducts folds all of that into the canonical shape once at
// startup, so the rest of the code never normalizes on read.

type legacyProduct struct {
	ID                int               `json:"id"`
	Nombre            string            `json:"nombre"`
	Descripcion       string            `json:"descripcion"`
	Precio            float64           `json:"precio"`
	Categoria         string            `json:"categoria"`
	Marca             *string           `json:"marca"`
	MarcaID           *int              `json:"marcaId"`
	Stock             int               `json:"stock"`
	Imagen            *string           `json:"imagen"`
	Imagenes          []json.RawMessage `json:"imagenes"`
	Atributos         map[string]string `json:"atributos"`
	FechaCreacion     time.Time         `json:"fechaCreacion"`
	FechaModificacion *time.Time        `json:"fechaModificacion"`
}

// MigrateProducts rewrites the product collection if any record still uses
// a legacy shape. It returns the number of migrated records.
func MigrateProducts(s *Store) (int, error) {
	marcas, err := Read[[]models.Brand](s, ColMarcas)
	if err != nil {
		return 0, err
	}
	brandIDByName := make(map[string]int, len(marcas))
	for _, m := range marcas {
		brandIDByName[strings.ToLower(m.Nombre)] = m.ID
	}

	// Dry pass first: an already-canonical collection is left untouched so a
	// fresh installation never gains an empty data file it did not have.
	raw, err := Read[[]json.RawMessage](s, ColProductos)
	if err != nil {
		return 0, err
	}
	needsMigration := false
	for _, entry := range raw {
		var legacy legacyProduct
		if err := json.Unmarshal(entry, &legacy); err != nil {
			continue
		}
		if _, changed := canonicalize(legacy, brandIDByName); changed {
			needsMigration = true
			break
		}
	}
	if !needsMigration {
		return 0, nil
	}

	migrated := 0
	err = Update(s, ColProductos, func(raw []json.RawMessage) ([]json.RawMessage, error) {
		out := make([]json.RawMessage, 0, len(raw))
		for _, entry := range raw {
			var legacy legacyProduct
			if err := json.Unmarshal(entry, &legacy); err != nil {
				// Unrecognizable record: keep it verbatim rather than drop data.
				out = append(out, entry)
				continue
			}

			product, changed := canonicalize(legacy, brandIDByName)
			if changed {
				migrated++
			}
			encoded, err := json.Marshal(product)
			if err != nil {
				return nil, err
			}
			out = append(out, encoded)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}

	if migrated > 0 {
		logrus.WithField("migrated", migrated).Info("Migrated legacy product records")
	}
	return migrated, nil
}

func canonicalize(legacy legacyProduct, brandIDByName map[string]int) (models.Product, bool) {
	changed := false

	imagenes := make([]string, 0, len(legacy.Imagenes)+1)
	for _, raw := range legacy.Imagenes {
		ruta, plain := imagePath(raw)
		if ruta != "" {
			imagenes = append(imagenes, ruta)
		}
		if !plain {
			changed = true
		}
	}
	if legacy.Imagen != nil {
		if *legacy.Imagen != "" {
			imagenes = append([]string{*legacy.Imagen}, imagenes...)
		}
		changed = true
	}

	marcaID := legacy.MarcaID
	if legacy.Marca != nil {
		if id, ok := brandIDByName[strings.ToLower(*legacy.Marca)]; ok && marcaID == nil {
			marcaID = &id
		}
		changed = true
	}

	return models.Product{
		ID:                legacy.ID,
		Nombre:            legacy.Nombre,
		Descripcion:       legacy.Descripcion,
		Precio:            legacy.Precio,
		Categoria:         legacy.Categoria,
		MarcaID:           marcaID,
		Stock:             legacy.Stock,
		Imagenes:          imagenes,
		Atributos:         legacy.Atributos,
		FechaCreacion:     legacy.FechaCreacion,
		FechaModificacion: legacy.FechaModificacion,
	}, changed
}

// imagePath extracts a path from one image list entry. Entries are plain
// strings in the canonical shape; legacy records used objects carrying the
// path under "ruta" or "url".
func imagePath(raw json.RawMessage) (ruta string, plain bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var obj struct {
		Ruta string `json:"ruta"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Ruta != "" {
			return obj.Ruta, false
		}
		return obj.URL, false
	}
	return "", false
}
