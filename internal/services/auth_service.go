// internal/services/auth_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

type AuthService struct {
	users *store.UserStore
	cfg   *config.Config
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nombre   string `json:"nombre" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	PasswordNueva  string `json:"passwordNueva" validate:"required,min=6"`
}

type AuthResponse struct {
	Token   string      `json:"token"`
	Usuario models.User `json:"usuario"`
}

// credencialesInvalidas is deliberately the same for "unknown email",
// "inactive account" and "wrong password" so responses cannot be used to
// enumerate accounts.
const credencialesInvalidas = "credenciales inválidas"

func NewAuthService(users *store.UserStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.NewValidationError("Email, contraseña y nombre son obligatorios (contraseña mínimo 6 caracteres)")
	}

	if s.users.EmailExists(req.Email) {
		return nil, models.NewConflictError("El email ya está registrado")
	}

	user := &models.User{
		ID:            uuid.New(),
		Email:         req.Email,
		Nombre:        req.Nombre,
		Rol:           models.RolAdministrador,
		Activo:        true,
		FechaCreacion: time.Now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Rol, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{Token: token, Usuario: user.Public()}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.NewValidationError("Email y contraseña son obligatorios")
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, models.NewAuthError(credencialesInvalidas)
	}
	if !user.Activo {
		return nil, models.NewAuthError(credencialesInvalidas)
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, models.NewAuthError(credencialesInvalidas)
	}

	now := time.Now()
	user.UltimoAcceso = &now
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update last access: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Rol, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{Token: token, Usuario: user.Public()}, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return models.NewValidationError("La nueva contraseña debe tener al menos 6 caracteres")
	}
	if req.PasswordNueva == req.PasswordActual {
		return models.NewValidationError("La nueva contraseña debe ser distinta a la actual")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if err := user.CheckPassword(req.PasswordActual); err != nil {
		return models.NewAuthError("La contraseña actual es incorrecta")
	}

	if err := user.SetPassword(req.PasswordNueva); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	user.FechaModificacion = &now
	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}
