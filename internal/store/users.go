// internal/store/users.go
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalogo-backend/internal/models"
)

// UserStore keeps one JSON file per account, named by its UUID. Email
// lookups go through an in-memory index (normalized email -> id) built from
// a single directory scan at startup and maintained on every save.
type UserStore struct {
	dir string

	mu      sync.RWMutex
	byEmail map[string]uuid.UUID
}

func NewUserStore(dir string) (*UserStore, error) {
	s := &UserStore{
		dir:     dir,
		byEmail: make(map[string]uuid.UUID),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to scan users directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		user, err := s.readUserFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Warn("Skipping unreadable user file")
			continue
		}
		s.byEmail[normalizeEmail(user.Email)] = user.ID
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserStore) userPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *UserStore) readUserFile(path string) (*models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user file %s: %w", filepath.Base(path), err)
	}
	return &user, nil
}

// EmailExists reports whether any account uses the email, compared
// case-insensitively.
func (s *UserStore) EmailExists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[normalizeEmail(email)]
	return ok
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return nil, models.NewNotFoundError("usuario no encontrado")
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.readUserFile(s.userPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.NewNotFoundError("usuario no encontrado")
		}
		return nil, err
	}
	return user, nil
}

// Save persists the account to its own file and refreshes the email index.
func (s *UserStore) Save(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create users directory: %w", err)
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := os.WriteFile(s.userPath(user.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write user file: %w", err)
	}

	// Drop any stale index entry pointing at this id before re-adding, in
	// case the email changed.
	for email, id := range s.byEmail {
		if id == user.ID {
			delete(s.byEmail, email)
		}
	}
	s.byEmail[normalizeEmail(user.Email)] = user.ID
	return nil
}
