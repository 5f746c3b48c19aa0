// internal/tests/storefront_api_test.go
package tests

import (
	"net/http"
)

// The storefront endpoints are public and decorate products with the
// resolved brand name.
func (s *APITestSuite) TestStorefrontProductsArePublic() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10", "marcaId": "1"})
	s.createProduct(map[string]string{"nombre": "Suelto", "precio": "5"})

	w := s.do(http.MethodGet, "/api/store/productos", "", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var productos []struct {
		Nombre  string  `json:"nombre"`
		Marca   *string `json:"marca"`
		MarcaID *int    `json:"marcaId"`
	}
	s.decode(w, &productos)
	s.Require().Len(productos, 2)

	s.Require().NotNil(productos[0].Marca)
	s.Equal("Acme", *productos[0].Marca)
	s.Nil(productos[1].Marca)
	s.Nil(productos[1].MarcaID)
}

func (s *APITestSuite) TestStorefrontBrandsArePublic() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)

	w := s.do(http.MethodGet, "/api/store/marcas", "", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var marcas []brandResponse
	s.decode(w, &marcas)
	s.Require().Len(marcas, 1)
	s.Equal("Acme", marcas[0].Nombre)
}
