// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/models"
)

// StorageService is the image asset manager. Files land in the configured
// upload directory, or in S3 when credentials are present; stored paths are
// always "uploads/<name>" so records stay backend-agnostic.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

const uploadPrefix = "uploads/"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.Storage.AWS.AccessKeyID == "" {
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Storage.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.Storage.AWS.AccessKeyID,
			cfg.Storage.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

// ValidateImage enforces the caller-side contract: accepted MIME type and
// the per-image size cap.
func (s *StorageService) ValidateImage(header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		return models.NewValidationError("Tipo de archivo no permitido. Solo se permiten imágenes (JPEG, PNG, GIF, WebP)")
	}
	if header.Size > s.cfg.Upload.MaxImageSize {
		return models.NewValidationError(fmt.Sprintf("El archivo es muy grande. Máximo %dMB permitido.", s.cfg.Upload.MaxImageSize/(1024*1024)))
	}
	return nil
}

// StoreImage saves one uploaded image under a generated unique name and
// returns its stored path.
func (s *StorageService) StoreImage(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	name := s.generateFileName(header.Filename)
	if s.s3Client != nil {
		return s.storeToS3(fileBytes, name, header.Header.Get("Content-Type"))
	}
	return s.storeToLocal(fileBytes, name)
}

func (s *StorageService) generateFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("producto-%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

func (s *StorageService) storeToLocal(fileBytes []byte, name string) (string, error) {
	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.cfg.Storage.UploadDir, name), fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}
	return uploadPrefix + name, nil
}

func (s *StorageService) storeToS3(fileBytes []byte, name, contentType string) (string, error) {
	key := uploadPrefix + name
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Storage.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}

// Delete unlinks a stored image. Best effort: a file that is already gone
// is not an error, and nothing here propagates to the caller.
func (s *StorageService) Delete(ruta string) {
	if ruta == "" {
		return
	}

	if s.s3Client != nil {
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Storage.AWS.S3Bucket),
			Key:    aws.String(ruta),
		})
		if err != nil {
			logrus.WithError(err).WithField("ruta", ruta).Warn("Failed to delete image from S3")
		}
		return
	}

	name := strings.TrimPrefix(ruta, uploadPrefix)
	if err := os.Remove(filepath.Join(s.cfg.Storage.UploadDir, filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("ruta", ruta).Warn("Failed to delete image file")
	}
}

// DeleteAll removes every path in the list, best effort.
func (s *StorageService) DeleteAll(rutas []string) {
	for _, ruta := range rutas {
		s.Delete(ruta)
	}
}
