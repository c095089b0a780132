package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jamscrape"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

var validate = validator.New()

// Config holds run defaults that are not exposed as flags.
type Config struct {
	DefaultCountry        string  `json:"default_country" validate:"required"`
	HoursOld              int     `json:"hours_old" validate:"gte=1"`
	DescriptionLimit      int     `json:"description_limit" validate:"gte=1"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds" validate:"gte=1,lte=600"`
	RequestsPerSecond     float64 `json:"requests_per_second" validate:"gt=0"`
	FetchDetails          bool    `json:"fetch_details"`
}

func DefaultConfig() Config {
	return Config{
		DefaultCountry:        envString("JAMSCRAPE_DEFAULT_COUNTRY", "usa"),
		HoursOld:              envInt("JAMSCRAPE_HOURS_OLD", 168),
		DescriptionLimit:      5000,
		RequestTimeoutSeconds: 30,
		RequestsPerSecond:     2,
		FetchDetails:          envBool("JAMSCRAPE_FETCH_DETAILS", false),
	}
}

// RequestTimeout returns the per request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads .env from the working directory, then the config file.
// A missing config file yields the defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	// Without a home directory there is no config file to read.
	path, err := ConfigPath()
	if err != nil {
		cfg := DefaultConfig()
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, cfg.Validate()
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JAMSCRAPE_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, nil
	}
	return ReadProxiesFile(path)
}

// ReadProxiesFile returns one proxy per non-empty line, skipping # comments.
func ReadProxiesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
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

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
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
