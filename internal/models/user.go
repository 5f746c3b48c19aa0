// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const RolAdministrador = "administrador"

// User is an administrator account, persisted one JSON file per ID.
// The bcrypt hash lives under the "password" key in those files; responses
// go through Public() so the hash never leaves the server.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"password,omitempty"`
	Nombre            string     `json:"nombre"`
	Rol               string     `json:"rol"`
	Activo            bool       `json:"activo"`
	FechaCreacion     time.Time  `json:"fechaCreacion"`
	UltimoAcceso      *time.Time `json:"ultimoAcceso"`
	FechaModificacion *time.Time `json:"fechaModificacion,omitempty"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Public returns a copy safe for API responses: the empty hash is dropped
// by the omitempty tag.
func (u *User) Public() User {
	pub := *u
	pub.PasswordHash = ""
	return pub
}
