package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config identifies the remote project and collection the client talks
// to. Values come from ~/.jobtrack/config.yaml, with environment
// variables taking precedence (same precedence the session snapshot
// path follows: env > file > default).
type Config struct {
	Endpoint     string `yaml:"endpoint"`
	ProjectID    string `yaml:"project_id"`
	DatabaseID   string `yaml:"database_id"`
	CollectionID string `yaml:"collection_id"`
	AdminUserID  string `yaml:"admin_user_id"`
}

const defaultEndpoint = "https://cloud.appwrite.io/v1"
const defaultCollection = "applications"

// Dir returns ~/.jobtrack, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".jobtrack"), nil
}

// Load reads the config file at path (empty = default location) and
// applies environment overrides. A missing file is not an error; the
// env can carry the whole config.
func Load(path string) (Config, error) {
	cfg := Config{Endpoint: defaultEndpoint, CollectionID: defaultCollection}

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.CollectionID == "" {
		cfg.CollectionID = defaultCollection
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JOBTRACK_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("JOBTRACK_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("JOBTRACK_DATABASE_ID"); v != "" {
		cfg.DatabaseID = v
	}
	if v := os.Getenv("JOBTRACK_COLLECTION_ID"); v != "" {
		cfg.CollectionID = v
	}
	if v := os.Getenv("JOBTRACK_ADMIN_USER_ID"); v != "" {
		cfg.AdminUserID = v
	}
}

// Validate reports the first missing required field.
func (c Config) Validate() error {
	switch {
	case c.ProjectID == "":
		return fmt.Errorf("project_id is required (config.yaml or JOBTRACK_PROJECT_ID)")
	case c.DatabaseID == "":
		return fmt.Errorf("database_id is required (config.yaml or JOBTRACK_DATABASE_ID)")
	}
	return nil
}
