// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	JWT         JWTConfig
	Storage     StorageConfig
	Upload      UploadConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type JWTConfig struct {
	SecretKey string
	TokenTTL  int // in hours
}

type StorageConfig struct {
	DataDir   string // JSON collection files
	UsersDir  string // one file per account
	UploadDir string // image files on local disk
	AWS       AWSConfig
}

// AWSConfig switches the image asset manager to S3 when AccessKeyID is set;
// local disk is used otherwise.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type UploadConfig struct {
	MaxImageSize       int64 // in bytes, per image
	MaxImagesPerUpload int
	MaxSpreadsheetSize int64 // in bytes
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenTTL:  getEnvAsInt("JWT_TOKEN_TTL", 24), // 24 hours
		},
		Storage: StorageConfig{
			DataDir:   getEnv("DATA_DIR", "./data"),
			UsersDir:  getEnv("USERS_DIR", "./data/users"),
			UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),
			AWS: AWSConfig{
				Region:          getEnv("AWS_REGION", "us-east-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				S3Bucket:        getEnv("AWS_S3_BUCKET", "catalogo-assets"),
			},
		},
		Upload: UploadConfig{
			MaxImageSize:       getEnvAsInt64("UPLOAD_MAX_IMAGE_SIZE", 5*1024*1024),
			MaxImagesPerUpload: getEnvAsInt("UPLOAD_MAX_IMAGES", 10),
			MaxSpreadsheetSize: getEnvAsInt64("UPLOAD_MAX_SPREADSHEET_SIZE", 10*1024*1024),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
