// internal/tests/brand_api_test.go
package tests

import (
	"net/http"
)

type brandResponse struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Logo        *string `json:"logo"`
}

func (s *APITestSuite) createBrand(fields map[string]string, logo bool) brandResponse {
	body := newMultipartBody()
	for k, v := range fields {
		body.field(k, v)
	}
	if logo {
		body.image("logo", "logo.png", "image/png")
	}
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/marcas", s.token, r, ct)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var m brandResponse
	s.decode(w, &m)
	return m
}

func (s *APITestSuite) TestCreateBrandWithLogo() {
	m := s.createBrand(map[string]string{"nombre": "Acme", "descripcion": "marca"}, true)

	s.Equal(1, m.ID)
	s.Equal("Acme", m.Nombre)
	s.Require().NotNil(m.Logo)
	s.Regexp(`^uploads/producto-\d+-[0-9a-f]{8}\.png$`, *m.Logo)
}

func (s *APITestSuite) TestCreateBrandDuplicateName() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)

	body := newMultipartBody().field("nombre", "ACME")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/marcas", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Ya existe una marca con ese nombre", s.errorMessage(w))
}

func (s *APITestSuite) TestDeleteBrandReferencedByProduct() {
	m := s.createBrand(map[string]string{"nombre": "Acme"}, false)
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10", "marcaId": "1"})

	w := s.do(http.MethodDelete, "/api/marcas/1", s.token, nil, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No se puede eliminar la marca porque tiene productos asociados", s.errorMessage(w))

	// Unlink the product and the delete goes through.
	w = s.do(http.MethodDelete, "/api/productos/1", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/marcas/1", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Mensaje string        `json:"mensaje"`
		Marca   brandResponse `json:"marca"`
	}
	s.decode(w, &resp)
	s.Equal("Marca eliminada", resp.Mensaje)
	s.Equal(m.ID, resp.Marca.ID)
}

func (s *APITestSuite) TestUpdateBrand() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)

	body := newMultipartBody().field("descripcion", "renovada")
	r, ct := body.done()
	w := s.do(http.MethodPut, "/api/marcas/1", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var m brandResponse
	s.decode(w, &m)
	s.Equal("Acme", m.Nombre)
	s.Equal("renovada", m.Descripcion)
}

func (s *APITestSuite) TestGetBrandNotFound() {
	w := s.do(http.MethodGet, "/api/marcas/42", s.token, nil, "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Marca no encontrada", s.errorMessage(w))
}
