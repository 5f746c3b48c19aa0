// internal/tests/product_api_test.go
package tests

import (
	"net/http"
)

type productResponse struct {
	ID                int               `json:"id"`
	Nombre            string            `json:"nombre"`
	Descripcion       string            `json:"descripcion"`
	Precio            float64           `json:"precio"`
	Categoria         string            `json:"categoria"`
	MarcaID           *int              `json:"marcaId"`
	Stock             int               `json:"stock"`
	Imagenes          []string          `json:"imagenes"`
	Atributos         map[string]string `json:"atributos"`
	FechaModificacion *string           `json:"fechaModificacion"`
}

func (s *APITestSuite) createProduct(fields map[string]string) productResponse {
	body := newMultipartBody()
	for k, v := range fields {
		body.field(k, v)
	}
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos", s.token, r, ct)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var p productResponse
	s.decode(w, &p)
	return p
}

func (s *APITestSuite) TestCreateProduct() {
	p := s.createProduct(map[string]string{
		"nombre":    "Widget",
		"precio":    "19.99",
		"stock":     "5",
		"atributos": `{"color":"rojo","talla":"M"}`,
	})

	s.Equal(1, p.ID)
	s.Equal("Widget", p.Nombre)
	s.Equal(19.99, p.Precio)
	s.Equal("General", p.Categoria, "categoría por defecto")
	s.Equal(5, p.Stock)
	s.Equal("rojo", p.Atributos["color"])
	s.NotNil(p.Imagenes)
	s.Empty(p.Imagenes)
}

func (s *APITestSuite) TestCreateProductValidation() {
	body := newMultipartBody().field("precio", "10")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Nombre y precio son obligatorios", s.errorMessage(w))

	// Malformed numbers are rejected, never coerced.
	body = newMultipartBody().field("nombre", "Widget").field("precio", "abc")
	r, ct = body.done()
	w = s.do(http.MethodPost, "/api/productos", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("El precio debe ser un número válido", s.errorMessage(w))

	body = newMultipartBody().field("nombre", "Widget").field("precio", "10").field("stock", "3.5")
	r, ct = body.done()
	w = s.do(http.MethodPost, "/api/productos", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("El stock debe ser un número entero válido", s.errorMessage(w))

	body = newMultipartBody().field("nombre", "Widget").field("precio", "10").field("marcaId", "99")
	r, ct = body.done()
	w = s.do(http.MethodPost, "/api/productos", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("La marca especificada no existe", s.errorMessage(w))
}

func (s *APITestSuite) TestUpdateProductPartial() {
	p := s.createProduct(map[string]string{"nombre": "Widget", "precio": "10", "descripcion": "original"})

	body := newMultipartBody().field("precio", "24.5")
	r, ct := body.done()
	w := s.do(http.MethodPut, "/api/productos/1", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated productResponse
	s.decode(w, &updated)
	s.Equal(p.ID, updated.ID)
	s.Equal("Widget", updated.Nombre)
	s.Equal("original", updated.Descripcion)
	s.Equal(24.5, updated.Precio)
	s.NotNil(updated.FechaModificacion)
}

func (s *APITestSuite) TestGetProductNotFound() {
	w := s.do(http.MethodGet, "/api/productos/999", s.token, nil, "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Producto no encontrado", s.errorMessage(w))

	w = s.do(http.MethodGet, "/api/productos/abc", s.token, nil, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("ID de producto inválido", s.errorMessage(w))
}

func (s *APITestSuite) TestDeleteProduct() {
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10"})

	w := s.do(http.MethodDelete, "/api/productos/1", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Mensaje  string          `json:"mensaje"`
		Producto productResponse `json:"producto"`
	}
	s.decode(w, &resp)
	s.Equal("Producto eliminado", resp.Mensaje)
	s.Equal("Widget", resp.Producto.Nombre)

	w = s.do(http.MethodGet, "/api/productos", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

func (s *APITestSuite) TestUploadImagesAndFavorite() {
	p := s.createProduct(map[string]string{"nombre": "Widget", "precio": "10"})

	body := newMultipartBody().
		field("indiceFavorita", "1").
		image("imagenes", "a.png", "image/png").
		image("imagenes", "b.jpg", "image/jpeg")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos/1/imagenes", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated productResponse
	s.decode(w, &updated)
	s.Equal(p.ID, updated.ID)
	s.Require().Len(updated.Imagenes, 2)
	// indiceFavorita=1 promotes the second upload to the front.
	s.Contains(updated.Imagenes[0], ".jpg")
	s.Contains(updated.Imagenes[1], ".png")
	for _, ruta := range updated.Imagenes {
		s.Regexp(`^uploads/producto-\d+-[0-9a-f]{8}\.(png|jpg)$`, ruta)
	}
}

func (s *APITestSuite) TestUploadRejectsWrongMimeType() {
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10"})

	body := newMultipartBody().image("imagenes", "nota.txt", "text/plain")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos/1/imagenes", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "Tipo de archivo no permitido")
}

func (s *APITestSuite) TestReorderImagesMakesFirstElementFavorite() {
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10"})

	body := newMultipartBody().
		image("imagenes", "a.png", "image/png").
		image("imagenes", "b.png", "image/png")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos/1/imagenes", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var p productResponse
	s.decode(w, &p)
	s.Require().Len(p.Imagenes, 2)

	reordered := []string{p.Imagenes[1], p.Imagenes[0]}
	w = s.putJSON("/api/productos/1/imagenes", s.token, map[string]interface{}{"imagenes": reordered})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated productResponse
	s.decode(w, &updated)
	s.Equal(reordered, updated.Imagenes)
}

func (s *APITestSuite) TestRemoveImage() {
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "10"})

	body := newMultipartBody().image("imagenes", "a.png", "image/png")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/productos/1/imagenes", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code)

	var p productResponse
	s.decode(w, &p)
	s.Require().Len(p.Imagenes, 1)

	w = s.deleteJSON("/api/productos/1/imagenes", s.token, map[string]string{"rutaImagen": p.Imagenes[0]})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated productResponse
	s.decode(w, &updated)
	s.Empty(updated.Imagenes)

	w = s.deleteJSON("/api/productos/1/imagenes", s.token, map[string]string{"rutaImagen": "uploads/fantasma.png"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Imagen no encontrada en el producto", s.errorMessage(w))
}
