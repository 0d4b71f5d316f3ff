package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// MinIOConfig holds settings for the S3-compatible bucket that backs the media provider.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET"`
	Region    string `env:"MINIO_REGION"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	// PublicBaseURL, when set, is used to build plain delivery URLs instead of presigned ones.
	PublicBaseURL string        `env:"MEDIA_PUBLIC_BASE_URL"`
	PresignTTL    time.Duration `env:"MEDIA_PRESIGN_TTL" envDefault:"24h"`
}

// UploadConfig bounds multipart uploads.
type UploadConfig struct {
	DefaultFolder string `env:"UPLOAD_DEFAULT_FOLDER" envDefault:"portfolio/uploads"`
	MaxFiles      int    `env:"UPLOAD_MAX_FILES" envDefault:"50"`
	MaxFileBytes  int64  `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"104857600"`
	// BodyLimit caps the whole request body accepted by the HTTP server.
	BodyLimit int `env:"HTTP_BODY_LIMIT_BYTES" envDefault:"1073741824"`
}

// AuthConfig selects how bearer tokens are verified. JWKSURL wins over Secret when both are set.
type AuthConfig struct {
	Enabled  bool   `env:"AUTH_ENABLED" envDefault:"true"`
	JWKSURL  string `env:"AUTH_JWKS_URL"`
	Secret   string `env:"AUTH_JWT_SECRET"`
	Issuer   string `env:"AUTH_ISSUER"`
	Audience string `env:"AUTH_AUDIENCE"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"media-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Log    LogConfig
	MinIO  MinIOConfig
	Upload UploadConfig
	Auth   AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.MinIO.Endpoint == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT is required"))
	}
	if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required"))
	}
	if c.MinIO.Bucket == "" {
		errs = append(errs, errors.New("MINIO_BUCKET is required"))
	}
	if c.Auth.Enabled && c.Auth.JWKSURL == "" && c.Auth.Secret == "" {
		errs = append(errs, errors.New("AUTH_JWKS_URL or AUTH_JWT_SECRET is required when AUTH_ENABLED=true"))
	}
	if c.Upload.MaxFiles <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILES must be positive"))
	}
	if c.Upload.MaxFileBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILE_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}
