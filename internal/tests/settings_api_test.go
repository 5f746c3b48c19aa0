// internal/tests/settings_api_test.go
package tests

import (
	"net/http"
)

type settingsResponse struct {
	Moneda struct {
		Simbolo  string `json:"simbolo"`
		Codigo   string `json:"codigo"`
		Nombre   string `json:"nombre"`
		Posicion string `json:"posicion"`
	} `json:"moneda"`
	Formato struct {
		Decimales        int    `json:"decimales"`
		SeparadorMiles   string `json:"separadorMiles"`
		SeparadorDecimal string `json:"separadorDecimal"`
	} `json:"formato"`
}

func (s *APITestSuite) TestGetSettingsReturnsDefaults() {
	w := s.do(http.MethodGet, "/api/configuracion", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var settings settingsResponse
	s.decode(w, &settings)
	s.Equal("$", settings.Moneda.Simbolo)
	s.Equal("USD", settings.Moneda.Codigo)
	s.Equal("antes", settings.Moneda.Posicion)
	s.Equal(2, settings.Formato.Decimales)
}

func (s *APITestSuite) TestUpdateSettingsMergesSections() {
	w := s.putJSON("/api/configuracion", s.token, map[string]interface{}{
		"moneda": map[string]string{
			"simbolo": "€", "codigo": "EUR", "nombre": "Euro", "posicion": "despues",
		},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var settings settingsResponse
	s.decode(w, &settings)
	s.Equal("€", settings.Moneda.Simbolo)
	s.Equal("despues", settings.Moneda.Posicion)
	s.Equal(2, settings.Formato.Decimales, "la sección formato conserva sus valores")

	// The merge persists across reads.
	w = s.do(http.MethodGet, "/api/configuracion", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &settings)
	s.Equal("EUR", settings.Moneda.Codigo)
}

func (s *APITestSuite) TestUpdateSettingsValidation() {
	w := s.putJSON("/api/configuracion", s.token, map[string]interface{}{})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.putJSON("/api/configuracion", s.token, map[string]interface{}{
		"moneda": map[string]string{
			"simbolo": "$", "codigo": "USD", "nombre": "Dólar", "posicion": "arriba",
		},
	})
	s.Equal(http.StatusBadRequest, w.Code)
}
