package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage providers.
const (
	ProviderS3    = "s3"
	ProviderMinIO = "minio"
)

// DefaultEnvFile is loaded, when present, before the environment is read.
const DefaultEnvFile = ".env"

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Upload  UploadConfig
}

type ServerConfig struct {
	Port               int           `envconfig:"PORT" default:"3000" validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5m"`
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type StorageConfig struct {
	Provider  string `envconfig:"STORAGE_PROVIDER" default:"s3" validate:"oneof=s3 minio"`
	Region    string `envconfig:"AWS_REGION" validate:"required_if=Provider s3"`
	AccessKey string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	Bucket    string `envconfig:"S3_BUCKET_NAME" validate:"required"`
	// Endpoint points the S3 provider at an S3-compatible service.
	Endpoint string `envconfig:"S3_ENDPOINT" validate:"omitempty,url"`

	MinIOEndpoint       string `envconfig:"MINIO_ENDPOINT" validate:"required_if=Provider minio"`
	MinIOPublicEndpoint string `envconfig:"MINIO_PUBLIC_ENDPOINT"`
	MinIOUseSSL         bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	VideoMaxBytes   int64         `envconfig:"VIDEO_MAX_BYTES" default:"524288000" validate:"gt=0"`
	AudioMaxBytes   int64         `envconfig:"AUDIO_MAX_BYTES" default:"52428800" validate:"gt=0"`
	SignedURLTTL    time.Duration `envconfig:"SIGNED_URL_TTL" default:"1h" validate:"gt=0"`
	ListConcurrency int           `envconfig:"LIST_CONCURRENCY" default:"16" validate:"min=1"`
}

// Load reads DefaultEnvFile if it exists, then the process environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom reads envFile if it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and reports every failing field.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
