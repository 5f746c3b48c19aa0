// internal/tests/auth_api_test.go
package tests

import (
	"encoding/json"
	"net/http"
)

func (s *APITestSuite) TestRegisterReturnsTokenAndUser() {
	w := s.postJSON("/api/auth/register", "", map[string]string{
		"email": "otro@prodcat.com", "password": "secreto", "nombre": "Otro",
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token   string `json:"token"`
		Usuario struct {
			Email    string `json:"email"`
			Rol      string `json:"rol"`
			Password string `json:"password"`
		} `json:"usuario"`
	}
	s.decode(w, &resp)
	s.NotEmpty(resp.Token)
	s.Equal("otro@prodcat.com", resp.Usuario.Email)
	s.Equal("administrador", resp.Usuario.Rol)
	s.Empty(resp.Usuario.Password, "el hash nunca viaja en la respuesta")
}

func (s *APITestSuite) TestRegisterDuplicateEmail() {
	w := s.postJSON("/api/auth/register", "", map[string]string{
		"email": "admin@prodcat.com", "password": "secreto", "nombre": "Duplicado",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("El email ya está registrado", s.errorMessage(w))
}

func (s *APITestSuite) TestLoginFailureBodiesAreIdentical() {
	wrongPass := s.postJSON("/api/auth/login", "", map[string]string{
		"email": "admin@prodcat.com", "password": "incorrecta",
	})
	unknown := s.postJSON("/api/auth/login", "", map[string]string{
		"email": "nadie@prodcat.com", "password": "secreto",
	})

	s.Equal(http.StatusUnauthorized, wrongPass.Code)
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.JSONEq(wrongPass.Body.String(), unknown.Body.String())
}

func (s *APITestSuite) TestProfileRequiresToken() {
	w := s.do(http.MethodGet, "/api/auth/perfil", "", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/auth/perfil", "token-basura", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/auth/perfil", s.token, nil, "")
	s.Equal(http.StatusOK, w.Code)

	var user struct {
		Email string `json:"email"`
	}
	s.decode(w, &user)
	s.Equal("admin@prodcat.com", user.Email)
}

func (s *APITestSuite) TestChangePasswordFlow() {
	w := s.putJSON("/api/auth/cambiar-password", s.token, map[string]string{
		"passwordActual": "incorrecta", "passwordNueva": "nuevosecreto",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("La contraseña actual es incorrecta", s.errorMessage(w))

	w = s.putJSON("/api/auth/cambiar-password", s.token, map[string]string{
		"passwordActual": "secreto", "passwordNueva": "nuevosecreto",
	})
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Contraseña actualizada correctamente", resp["mensaje"])

	// The old password no longer works, the new one does.
	w = s.postJSON("/api/auth/login", "", map[string]string{
		"email": "admin@prodcat.com", "password": "secreto",
	})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.postJSON("/api/auth/login", "", map[string]string{
		"email": "admin@prodcat.com", "password": "nuevosecreto",
	})
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestLogoutAcknowledges() {
	w := s.do(http.MethodPost, "/api/auth/logout", s.token, nil, "")
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.decode(w, &resp)
	s.Equal("Sesión cerrada correctamente", resp["mensaje"])
}

func (s *APITestSuite) TestAdminRoutesRequireToken() {
	for _, path := range []string{"/api/productos", "/api/marcas", "/api/configuracion"} {
		w := s.do(http.MethodGet, path, "", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}
