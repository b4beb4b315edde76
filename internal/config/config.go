package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config represents the comet configuration.
type Config struct {
	// Provider and Model are the active completion configuration.
	Provider string `json:"provider"`
	Model    string `json:"model"`

	// CommitProvider/CommitModel, when set, are a dedicated configuration
	// for commit-message generation. They are used only while the provider
	// is still among the supported set; otherwise the active configuration
	// applies.
	CommitProvider string `json:"commitProvider,omitempty"`
	CommitModel    string `json:"commitModel,omitempty"`

	// Format selects the result output format (text, json).
	Format string `json:"format"`

	// MaxDiffBytes caps the diff section of the context document.
	MaxDiffBytes int `json:"maxDiffBytes"`

	// LogCount is how many recent commits the context includes.
	LogCount int `json:"logCount"`

	// StyleFile overrides the repo-local commit style file path.
	StyleFile string `json:"styleFile,omitempty"`

	// Workspaces lists known workspace roots for repository resolution.
	Workspaces []string `json:"workspaces,omitempty"`

	Session SessionConfig `json:"session"`
	Privacy PrivacyConfig `json:"privacy"`
}

// SessionConfig controls the persistent per-repository generation session.
type SessionConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-6",
		Format:       "text",
		MaxDiffBytes: 500000,
		LogCount:     5,
		Session: SessionConfig{
			Enabled: true,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for comet.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "comet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "comet"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "comet"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "comet"), nil
	default:
		return filepath.Join(home, ".config", "comet"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileBools mirrors the boolean knobs of the file schema with pointers, so
// an explicit false in the file is distinguishable from an absent key.
type fileBools struct {
	Session struct {
		Enabled *bool `json:"enabled"`
	} `json:"session"`
	Privacy struct {
		RedactSecrets *bool `json:"redactSecrets"`
	} `json:"privacy"`
}

// LoadFile loads config from the config file. Returns the defaults if the
// file doesn't exist, so editing a fresh install starts from them.
func LoadFile() (Config, error) {
	cfg, _, err := loadFile()
	if err != nil {
		return Config{}, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return *cfg, nil
}

// loadFile parses the config file. A nil Config with nil error means the
// file doesn't exist.
func loadFile() (*Config, fileBools, error) {
	var bools fileBools
	path, err := ConfigPath()
	if err != nil {
		return nil, bools, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bools, nil
		}
		return nil, bools, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, bools, fmt.Errorf("parsing config file: %w", err)
	}
	if err := json.Unmarshal(data, &bools); err != nil {
		return nil, bools, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, bools, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, bools, err := loadFile()
	if err != nil {
		return Config{}, err
	}
	if fileCfg != nil {
		mergeFile(&cfg, *fileCfg, bools)
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config, bools fileBools) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.CommitProvider != "" {
		dst.CommitProvider = src.CommitProvider
	}
	if src.CommitModel != "" {
		dst.CommitModel = src.CommitModel
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.MaxDiffBytes > 0 {
		dst.MaxDiffBytes = src.MaxDiffBytes
	}
	if src.LogCount > 0 {
		dst.LogCount = src.LogCount
	}
	if src.StyleFile != "" {
		dst.StyleFile = src.StyleFile
	}
	if len(src.Workspaces) > 0 {
		dst.Workspaces = src.Workspaces
	}
	if src.Session.Dir != "" {
		dst.Session.Dir = src.Session.Dir
	}
	// The boolean knobs default to true, so an explicit false in the file
	// must win. They merge from the pointer view of the file, where absent
	// and false are distinct.
	if b := bools.Session.Enabled; b != nil {
		dst.Session.Enabled = *b
	}
	if b := bools.Privacy.RedactSecrets; b != nil {
		dst.Privacy.RedactSecrets = *b
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("COMET_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("COMET_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COMET_COMMIT_PROVIDER"); v != "" {
		cfg.CommitProvider = v
	}
	if v := os.Getenv("COMET_COMMIT_MODEL"); v != "" {
		cfg.CommitModel = v
	}
	if v := os.Getenv("COMET_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("COMET_MAX_DIFF_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDiffBytes = n
		}
	}
	if v := os.Getenv("COMET_LOG_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LogCount = n
		}
	}
	if v := os.Getenv("COMET_SESSION_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Session.Enabled = b
		}
	}
	if v := os.Getenv("COMET_REDACT_SECRETS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Privacy.RedactSecrets = b
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["commitProvider"]; ok && v != "" {
		cfg.CommitProvider = v
	}
	if v, ok := overrides["commitModel"]; ok && v != "" {
		cfg.CommitModel = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["maxDiffBytes"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDiffBytes = n
		}
	}
	if v, ok := overrides["logCount"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LogCount = n
		}
	}
	if v, ok := overrides["styleFile"]; ok && v != "" {
		cfg.StyleFile = v
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "commitProvider":
		cfg.CommitProvider = value
	case "commitModel":
		cfg.CommitModel = value
	case "format":
		cfg.Format = value
	case "maxDiffBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDiffBytes must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	case "logCount":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("logCount must be an integer: %w", err)
		}
		cfg.LogCount = n
	case "styleFile":
		cfg.StyleFile = value
	case "workspaces":
		var roots []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				roots = append(roots, p)
			}
		}
		cfg.Workspaces = roots
	case "session.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("session.enabled must be a boolean: %w", err)
		}
		cfg.Session.Enabled = b
	case "session.dir":
		cfg.Session.Dir = value
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
