package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything opsview reads from its config file.
type Config struct {
	APIURL         string
	Locale         string
	Currency       string
	CurrencySymbol string
	RequestTimeout time.Duration
	LogFile        string
	Statuses       []StatusEntry
	Labels         map[string]string
}

// StatusEntry declares one status code the backend may send and how it is shown.
type StatusEntry struct {
	Code  string `toml:"code"`
	Label string `toml:"label"`
	Icon  string `toml:"icon"`
}

const (
	defaultConfigPath     = "~/.config/opsview/config.toml"
	defaultLogFile        = "~/.local/state/opsview/opsview.log"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultLocale         = "pt-BR"
	defaultCurrency       = "BRL"
	defaultCurrencySymbol = "R$"
	defaultRequestTimeout = 10 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		Locale:         defaultLocale,
		Currency:       defaultCurrency,
		CurrencySymbol: defaultCurrencySymbol,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// fileConfig mirrors the TOML layout before defaults are applied.
type fileConfig struct {
	APIURL         string            `toml:"api_url"`
	Locale         string            `toml:"locale"`
	Currency       string            `toml:"currency"`
	CurrencySymbol string            `toml:"currency_symbol"`
	TimeoutSeconds int               `toml:"request_timeout_seconds"`
	LogFile        string            `toml:"log_file"`
	Statuses       []StatusEntry     `toml:"statuses"`
	Labels         map[string]string `toml:"labels"`
}

// Load locates and parses the opsview config, falling back to defaults when
// missing. OPSVIEW_* environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	if err := readFile(resolved, &raw); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&raw, os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.Locale = orDefault(raw.Locale, defaultLocale)
	cfg.Currency = strings.ToUpper(orDefault(raw.Currency, defaultCurrency))
	// The default symbol belongs to the default currency; other currencies
	// fall back to their ISO code unless a symbol is configured.
	cfg.CurrencySymbol = strings.TrimSpace(raw.CurrencySymbol)
	if cfg.CurrencySymbol == "" && cfg.Currency == defaultCurrency {
		cfg.CurrencySymbol = defaultCurrencySymbol
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	statuses, err := normalizeStatuses(raw.Statuses)
	if err != nil {
		return Config{}, err
	}
	cfg.Statuses = statuses

	if len(raw.Labels) > 0 {
		cfg.Labels = make(map[string]string, len(raw.Labels))
		for token, text := range raw.Labels {
			token = strings.TrimSpace(token)
			text = strings.TrimSpace(text)
			if token == "" || text == "" {
				continue
			}
			cfg.Labels[token] = text
		}
	}

	return cfg, nil
}

// readFile decodes the TOML file at path into raw. A missing file leaves raw
// untouched.
func readFile(path string, raw *fileConfig) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func normalizeStatuses(entries []StatusEntry) ([]StatusEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(entries))
	out := make([]StatusEntry, 0, len(entries))
	for i, entry := range entries {
		code := strings.ToUpper(strings.TrimSpace(entry.Code))
		if code == "" {
			return nil, fmt.Errorf("statuses[%d]: code is empty", i)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("statuses[%d]: duplicate code %q", i, code)
		}
		seen[code] = struct{}{}
		out = append(out, StatusEntry{
			Code:  code,
			Label: strings.TrimSpace(entry.Label),
			Icon:  strings.TrimSpace(entry.Icon),
		})
	}
	return out, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
