// internal/models/settings.go
package models

import "time"

// Settings is the singleton display configuration. It is created lazily
// with defaults on first read and shallow-merged per section on update.
type Settings struct {
	Moneda     Moneda     `json:"moneda"`
	Formato    Formato    `json:"formato"`
	Aplicacion Aplicacion `json:"aplicacion"`
}

type Moneda struct {
	Simbolo  string `json:"simbolo"`
	Codigo   string `json:"codigo"`
	Nombre   string `json:"nombre"`
	Posicion string `json:"posicion"` // "antes" | "despues"
}

type Formato struct {
	Decimales        int    `json:"decimales"`
	SeparadorMiles   string `json:"separadorMiles"`
	SeparadorDecimal string `json:"separadorDecimal"`
}

type Aplicacion struct {
	Nombre              string    `json:"nombre"`
	Version             string    `json:"version"`
	UltimaActualizacion time.Time `json:"ultimaActualizacion"`
}

const (
	PosicionAntes   = "antes"
	PosicionDespues = "despues"
)

func DefaultSettings() Settings {
	return Settings{
		Moneda: Moneda{
			Simbolo:  "$",
			Codigo:   "USD",
			Nombre:   "Dólar",
			Posicion: PosicionAntes,
		},
		Formato: Formato{
			Decimales:        2,
			SeparadorMiles:   ",",
			SeparadorDecimal: ".",
		},
		Aplicacion: Aplicacion{
			Nombre:              "Catálogo de Productos",
			Version:             "1.0.0",
			UltimaActualizacion: time.Now(),
		},
	}
}

// IsZero reports whether s was decoded from an absent or empty file.
func (s Settings) IsZero() bool {
	return s.Moneda == (Moneda{}) && s.Formato == (Formato{}) && s.Aplicacion == (Aplicacion{})
}
