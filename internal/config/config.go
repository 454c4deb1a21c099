package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "adscli"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"

	DefaultBackendURL = "http://localhost:8080"
)

// Config contains backend and session settings.
type Config struct {
	BackendURL           string `json:"backend_url"`
	DefaultCountry       string `json:"default_country"`
	TimeoutSeconds       int    `json:"timeout_seconds"`
	RedirectDelaySeconds int    `json:"redirect_delay_seconds"`
}

func DefaultConfig() Config {
	return Config{
		BackendURL:           envString("ADSCLI_BACKEND_URL", DefaultBackendURL),
		DefaultCountry:       envString("ADSCLI_DEFAULT_COUNTRY", ""),
		TimeoutSeconds:       envInt("ADSCLI_TIMEOUT_SECONDS", 0),
		RedirectDelaySeconds: 2,
	}
}

// Timeout is the per-request timeout; zero means none.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) RedirectDelay() time.Duration {
	if c.RedirectDelaySeconds < 0 {
		return 0
	}
	return time.Duration(c.RedirectDelaySeconds) * time.Second
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("ADSCLI_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func Load() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json from dir. A missing or empty file yields the
// defaults. Environment overrides win over the file.
func LoadFrom(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	applyEnv(&cfg)

	if strings.TrimSpace(cfg.BackendURL) == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if val := strings.TrimSpace(os.Getenv("ADSCLI_BACKEND_URL")); val != "" {
		cfg.BackendURL = val
	}
	if val := strings.TrimSpace(os.Getenv("ADSCLI_DEFAULT_COUNTRY")); val != "" {
		cfg.DefaultCountry = val
	}
	if val := envInt("ADSCLI_TIMEOUT_SECONDS", -1); val >= 0 {
		cfg.TimeoutSeconds = val
	}
}

// Init writes default config.json and proxies.txt into dir if they don't
// already exist.
func Init(dir string) ([]string, error) {
	var created []string

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies resolves the proxy list: flag value, then ADSCLI_PROXIES, then
// proxies.txt in dir.
func LoadProxies(dir string, flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("ADSCLI_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	data, err := os.ReadFile(filepath.Join(dir, ProxiesFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
