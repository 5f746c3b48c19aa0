// internal/tests/excel_api_test.go
package tests

import (
	"net/http"
)

func (s *APITestSuite) TestExcelExportDownload() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "9.99", "marcaId": "1"})

	w := s.do(http.MethodGet, "/api/excel/exportar", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	s.Regexp(`attachment; filename="catalogo_\d{4}-\d{2}-\d{2}\.xlsx"`, w.Header().Get("Content-Disposition"))
	s.NotEmpty(w.Body.Bytes())
}

func (s *APITestSuite) TestExcelExportThenImportRoundTrip() {
	s.createBrand(map[string]string{"nombre": "Acme"}, false)
	s.createProduct(map[string]string{"nombre": "Widget", "precio": "9.99", "stock": "4", "marcaId": "1"})

	export := s.do(http.MethodGet, "/api/excel/exportar", s.token, nil, "")
	s.Require().Equal(http.StatusOK, export.Code)

	body := newMultipartBody().file("archivo", "catalogo.xlsx", export.Body.Bytes())
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/excel/importar", s.token, r, ct)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Mensaje    string `json:"mensaje"`
		Resultados struct {
			ProductosProcesados int      `json:"productosProcesados"`
			MarcasProcesadas    int      `json:"marcasProcesadas"`
			Errores             []string `json:"errores"`
		} `json:"resultados"`
	}
	s.decode(w, &resp)
	s.Equal("Importación completada", resp.Mensaje)
	s.Equal(1, resp.Resultados.ProductosProcesados)
	s.Equal(1, resp.Resultados.MarcasProcesadas)
	s.Empty(resp.Resultados.Errores)

	// Re-importing is an upsert: the product count stays at one.
	w = s.do(http.MethodGet, "/api/productos", s.token, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var productos []productResponse
	s.decode(w, &productos)
	s.Require().Len(productos, 1)
	s.Equal("Widget", productos[0].Nombre)
	s.Equal(9.99, productos[0].Precio)
}

func (s *APITestSuite) TestExcelImportRejectsWrongExtension() {
	body := newMultipartBody().file("archivo", "datos.csv", []byte("a,b,c"))
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/excel/importar", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Solo se permiten archivos Excel (.xlsx, .xls)", s.errorMessage(w))
}

func (s *APITestSuite) TestExcelImportRejectsMissingFile() {
	body := newMultipartBody().field("nota", "sin archivo")
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/excel/importar", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Debe adjuntar un archivo", s.errorMessage(w))
}

func (s *APITestSuite) TestExcelImportRejectsCorruptWorkbook() {
	body := newMultipartBody().file("archivo", "roto.xlsx", []byte("esto no es un xlsx"))
	r, ct := body.done()
	w := s.do(http.MethodPost, "/api/excel/importar", s.token, r, ct)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("El archivo no es una hoja de cálculo válida", s.errorMessage(w))
}
