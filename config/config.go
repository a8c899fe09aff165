package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8007"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:3000"`
	// SessionSecret signs the guest name cookie. Empty turns the cookie off.
	SessionSecret   string        `yaml:"session_secret" env:"SESSION_SECRET"`
	UploadRateLimit int           `yaml:"upload_rate_limit" env:"UPLOAD_RATE_LIMIT" env-default:"30"`
	RateWindow      time.Duration `yaml:"rate_window" env:"UPLOAD_RATE_WINDOW" env-default:"1m"`
	Database        Database      `yaml:"database"`
	Media           Media         `yaml:"media"`
	RedisAddr       string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	NATSURL         string        `yaml:"nats_url" env:"NATS_URL"`
	ClamAVURL       string        `yaml:"clamav_url" env:"CLAMAV_URL"`
	TraceEnabled    bool          `yaml:"dd_trace_enabled" env:"DD_TRACE_ENABLED" env-default:"false"`
}

type Database struct {
	Driver        string `yaml:"driver" env:"DB_DRIVER" env-default:"mongo"`
	MongoURI      string `yaml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"wedding_gallery"`
	SQLitePath    string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"gallery.db"`
	PostgresDSN   string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
}

type Media struct {
	Driver         string        `yaml:"driver" env:"MEDIA_DRIVER" env-default:"s3"`
	Bucket         string        `yaml:"bucket" env:"BUCKET_NAME"`
	Region         string        `yaml:"region" env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint       string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	PublicBaseURL  string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	MinioEndpoint  string        `yaml:"minio_endpoint" env:"MINIO_ENDPOINT"`
	MinioAccessKey string        `yaml:"minio_access_key" env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string        `yaml:"minio_secret_key" env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool          `yaml:"minio_use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
	Folder         string        `yaml:"folder" env:"MEDIA_FOLDER" env-default:"wedding-gallery"`
	Presign        bool          `yaml:"presign" env:"MEDIA_PRESIGN" env-default:"false"`
	PresignTTL     time.Duration `yaml:"presign_ttl" env:"MEDIA_PRESIGN_TTL" env-default:"10m"`
}

var (
	dbDrivers    = []string{"mongo", "sqlite", "postgres", "media"}
	mediaDrivers = []string{"s3", "minio", "memory"}
)

// Load reads .env when present, then the environment (and CONFIG_PATH if set).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using the process environment", "error", err)
	}
	return Read(os.Getenv("CONFIG_PATH"))
}

// Read builds the config from an optional YAML file overlaid with environment
// variables and checks the values each driver needs.
func Read(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad stops the process when the configuration is incomplete.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	missing := func(key string) { errs = append(errs, fmt.Errorf("%s is required", key)) }

	if !slices.Contains(dbDrivers, c.Database.Driver) {
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of %v", c.Database.Driver, dbDrivers))
	}
	switch c.Database.Driver {
	case "mongo":
		if c.Database.MongoURI == "" {
			missing("MONGO_URI")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			missing("POSTGRES_DSN")
		}
	}

	if !slices.Contains(mediaDrivers, c.Media.Driver) {
		errs = append(errs, fmt.Errorf("MEDIA_DRIVER %q is not one of %v", c.Media.Driver, mediaDrivers))
	}
	switch c.Media.Driver {
	case "s3":
		if c.Media.Bucket == "" {
			missing("BUCKET_NAME")
		}
	case "minio":
		if c.Media.Bucket == "" {
			missing("BUCKET_NAME")
		}
		if c.Media.MinioEndpoint == "" {
			missing("MINIO_ENDPOINT")
		}
		if c.Media.MinioAccessKey == "" || c.Media.MinioSecretKey == "" {
			missing("MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
		}
	}

	if len(c.CORSOrigins) == 0 {
		missing("CORS_ORIGINS")
	}
	if c.UploadRateLimit < 0 {
		errs = append(errs, errors.New("UPLOAD_RATE_LIMIT must not be negative"))
	}
	if c.RateWindow <= 0 {
		errs = append(errs, errors.New("UPLOAD_RATE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
