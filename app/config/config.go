package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"QuickSales/app/security"
)

// Baked-in remote defaults. A build for a specific deployment can set these
// via -ldflags; development builds leave them empty and fall through to the
// environment.
var (
	DefaultRemoteURL = ""
	DefaultRemoteKey = ""
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Remote store connection
	Remote RemoteConfig `json:"remote"`

	// Insight collaborator settings
	Insight InsightConfig `json:"insight"`

	// System settings
	System SystemConfig `json:"system"`

	// First run flag
	FirstRun bool `json:"first_run"`
}

// RemoteConfig holds the remote store endpoint and access key. A non-empty
// URL here overrides both the baked-in default and the environment.
type RemoteConfig struct {
	URL       string `json:"url"`
	AccessKey string `json:"access_key"`
}

// InsightConfig holds the external insight collaborator settings
type InsightConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// SystemConfig holds system settings
type SystemConfig struct {
	DataPath string `json:"data_path"`
	HTTPPort string `json:"http_port"`
}

// GetConfigDir returns the directory holding config.json, the local cache
// and the logs. QUICKSALES_DATA_DIR overrides the platform default.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("QUICKSALES_DATA_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("could not create data directory: %w", err)
		}
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		base = homeDir
	}

	configDir := filepath.Join(base, "QuickSales")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig loads configuration from config.json and decrypts sensitive fields
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	cfg.decryptSensitiveFields()
	return &cfg, nil
}

// SaveConfig saves configuration to config.json after encrypting sensitive fields
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Encrypt a copy so the caller keeps plaintext values
	cfgCopy := *cfg
	if err := cfgCopy.encryptSensitiveFields(); err != nil {
		return fmt.Errorf("could not encrypt sensitive fields: %w", err)
	}

	data, err := json.MarshalIndent(&cfgCopy, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// LoadOrCreate loads the existing config or writes a fresh default one
func LoadOrCreate() (*AppConfig, error) {
	cfg, err := LoadConfig()
	if err == nil {
		return cfg, nil
	}

	cfg = &AppConfig{
		Insight:  InsightConfig{Model: "gpt-4o-mini"},
		System:   SystemConfig{HTTPPort: "8090"},
		FirstRun: true,
	}
	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EffectiveRemote resolves the remote endpoint and access key.
// Precedence: persisted override > baked-in default > environment.
func (cfg *AppConfig) EffectiveRemote() (url, accessKey string) {
	if cfg.Remote.URL != "" {
		return cfg.Remote.URL, cfg.Remote.AccessKey
	}
	if DefaultRemoteURL != "" {
		return DefaultRemoteURL, DefaultRemoteKey
	}
	if u := os.Getenv("QUICKSALES_REMOTE_URL"); u != "" {
		return u, os.Getenv("QUICKSALES_REMOTE_KEY")
	}
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u, ""
	}
	return "", ""
}

// EffectiveInsightKey resolves the insight collaborator API key.
// Same precedence as the remote settings.
func (cfg *AppConfig) EffectiveInsightKey() string {
	if cfg.Insight.APIKey != "" {
		return cfg.Insight.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// HTTPPort returns the configured HTTP port, with PORT and a default as fallback
func (cfg *AppConfig) HTTPPort() string {
	if cfg.System.HTTPPort != "" {
		return cfg.System.HTTPPort
	}
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8090"
}

// SetRemote persists a new remote endpoint and access key
func SetRemote(url, accessKey string) (*AppConfig, error) {
	cfg, err := LoadOrCreate()
	if err != nil {
		return nil, err
	}
	cfg.Remote.URL = url
	cfg.Remote.AccessKey = accessKey
	cfg.FirstRun = false
	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *AppConfig) encryptSensitiveFields() error {
	var err error
	if cfg.Remote.AccessKey != "" {
		cfg.Remote.AccessKey, err = security.Encrypt(cfg.Remote.AccessKey)
		if err != nil {
			return fmt.Errorf("could not encrypt access key: %w", err)
		}
	}
	if cfg.Insight.APIKey != "" {
		cfg.Insight.APIKey, err = security.Encrypt(cfg.Insight.APIKey)
		if err != nil {
			return fmt.Errorf("could not encrypt insight key: %w", err)
		}
	}
	return nil
}

// decryptSensitiveFields decrypts sensitive fields in place. A value that
// fails to decrypt is assumed to be plaintext and kept as-is, so a hand
// edited config file still works in development.
func (cfg *AppConfig) decryptSensitiveFields() {
	if cfg.Remote.AccessKey != "" {
		if decrypted, err := security.Decrypt(cfg.Remote.AccessKey); err == nil {
			cfg.Remote.AccessKey = decrypted
		}
	}
	if cfg.Insight.APIKey != "" {
		if decrypted, err := security.Decrypt(cfg.Insight.APIKey); err == nil {
			cfg.Insight.APIKey = decrypted
		}
	}
}
