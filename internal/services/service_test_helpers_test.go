// internal/services/service_test_helpers_test.go
package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Environment: "test",
		Storage: config.StorageConfig{
			DataDir:   filepath.Join(base, "data"),
			UsersDir:  filepath.Join(base, "data", "users"),
			UploadDir: filepath.Join(base, "uploads"),
		},
		Upload: config.UploadConfig{
			MaxImageSize:       5 * 1024 * 1024,
			MaxImagesPerUpload: 10,
			MaxSpreadsheetSize: 10 * 1024 * 1024,
		},
	}
}

func testStack(t *testing.T) (*config.Config, *store.Store, *StorageService) {
	t.Helper()
	cfg := testConfig(t)
	db := store.New(cfg.Storage.DataDir)
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)
	return cfg, db, storage
}

// writeUpload drops a file into the upload directory and returns its stored
// path, the way StoreImage would have recorded it.
func writeUpload(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.Storage.UploadDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Storage.UploadDir, name), []byte("img"), 0o644))
	return "uploads/" + name
}

func uploadExists(cfg *config.Config, name string) bool {
	_, err := os.Stat(filepath.Join(cfg.Storage.UploadDir, name))
	return err == nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
