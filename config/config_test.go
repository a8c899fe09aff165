package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRead_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("BUCKET_NAME", "gallery")

	cfg, err := Read("")
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if cfg.Port != "8007" || cfg.Addr() != ":8007" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.Database.Driver != "mongo" || cfg.Media.Driver != "s3" || cfg.Media.Folder != "wedding-gallery" {
		t.Errorf("unexpected drivers %+v %+v", cfg.Database, cfg.Media)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.Media.PresignTTL != 10*time.Minute {
		t.Errorf("unexpected defaults %v %v", cfg.CORSOrigins, cfg.Media.PresignTTL)
	}
}

func TestRead_SessionSecretOptional(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("MEDIA_DRIVER", "memory")

	cfg, err := Read("")
	if err != nil {
		t.Fatalf("expected a minimal config without SESSION_SECRET, got %v", err)
	}
	if cfg.SessionSecret != "" {
		t.Errorf("expected empty session secret, got %q", cfg.SessionSecret)
	}
}

func TestRead_MissingRequired(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("MEDIA_DRIVER", "minio")
	_, err := Read("")
	if err == nil {
		t.Fatal("expected driver specific errors")
	}
	for _, key := range []string{"POSTGRES_DSN", "BUCKET_NAME", "MINIO_ENDPOINT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected %s in %v", key, err)
		}
	}
}

func TestRead_UnknownDriver(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "cassandra")
	t.Setenv("MEDIA_DRIVER", "memory")
	if _, err := Read(""); err == nil || !strings.Contains(err.Error(), "cassandra") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestRead_YAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `port: "9000"
session_secret: from-file
cors_origins: ["https://wedding.example"]
database:
  driver: sqlite
  sqlite_path: ":memory:"
media:
  driver: memory
  presign: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override file, got port %q", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || !cfg.Media.Presign || cfg.SessionSecret != "from-file" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://wedding.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestValidate_RateWindow(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("MEDIA_DRIVER", "memory")
	t.Setenv("UPLOAD_RATE_WINDOW", "0s")

	_, err := Read("")
	if err == nil || !strings.Contains(err.Error(), "UPLOAD_RATE_WINDOW") {
		t.Fatalf("expected rate window error, got %v", err)
	}
}
