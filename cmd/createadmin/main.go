// cmd/createadmin/main.go
//
// Seeds the initial administrator account. Intended for a fresh
// installation; refuses to run when the email is already registered.
package main

import (
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
)

func main() {
	email := flag.String("email", "admin@prodcat.com", "email de la cuenta")
	password := flag.String("password", "admin123", "contraseña inicial")
	nombre := flag.String("nombre", "Administrador", "nombre a mostrar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	users, err := store.NewUserStore(cfg.Storage.UsersDir)
	if err != nil {
		logrus.Fatal("Failed to initialize user store: ", err)
	}

	if users.EmailExists(*email) {
		logrus.Fatalf("Ya existe un usuario con el email %s", *email)
	}

	admin := &models.User{
		ID:            uuid.New(),
		Email:         *email,
		Nombre:        *nombre,
		Rol:           models.RolAdministrador,
		Activo:        true,
		FechaCreacion: time.Now(),
	}
	if err := admin.SetPassword(*password); err != nil {
		logrus.Fatal("Failed to hash password: ", err)
	}
	if err := users.Save(admin); err != nil {
		logrus.Fatal("Failed to persist user: ", err)
	}

	logrus.WithFields(logrus.Fields{
		"email": admin.Email,
		"id":    admin.ID,
	}).Info("Usuario administrador creado exitosamente")
}
