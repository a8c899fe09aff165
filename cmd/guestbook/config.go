package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guestgallery/gallery"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIBaseURL   string `yaml:"api_base_url"`
	CacheDir     string `yaml:"cache_dir"`
	DefaultSort  string `yaml:"default_sort"`
	UploadFolder string `yaml:"upload_folder"`
	// GuestName is remembered after the first successful upload.
	GuestName string `yaml:"guest_name"`
	// PickerRoot is where the fuzzy finder looks for photos when no path is given.
	PickerRoot string `yaml:"picker_root"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:   "http://localhost:8007/api",
		CacheDir:     defaultCacheDir(),
		DefaultSort:  string(gallery.SortNewest),
		UploadFolder: "wedding-gallery",
		PickerRoot:   ".",
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "guestgallery")
	}
	return filepath.Join(dir, "guestgallery")
}

// DefaultConfigPath is ~/.config/guestgallery/config.yaml, or GUESTBOOK_CONFIG when set.
func DefaultConfigPath() string {
	if p := os.Getenv("GUESTBOOK_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "guestgallery", "config.yaml")
}

// Load reads configuration from the specified file path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	if _, err := gallery.ParseSortMode(cfg.DefaultSort); err != nil {
		cfg.DefaultSort = defaults.DefaultSort
	}
	if cfg.UploadFolder == "" {
		cfg.UploadFolder = defaults.UploadFolder
	}
	if cfg.PickerRoot == "" {
		cfg.PickerRoot = defaults.PickerRoot
	}
	return cfg, nil
}

// Save writes the config, creating the parent directory when needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
