package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvAPIURL         = "OPSVIEW_API_URL"
	EnvLocale         = "OPSVIEW_LOCALE"
	EnvCurrency       = "OPSVIEW_CURRENCY"
	EnvCurrencySymbol = "OPSVIEW_CURRENCY_SYMBOL"
	EnvRequestTimeout = "OPSVIEW_REQUEST_TIMEOUT_SECONDS"
	EnvLogFile        = "OPSVIEW_LOG_FILE"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set keep their value. A missing file is not an
// error; an empty path means ".env" in the working directory.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// applyEnv overlays non-empty OPSVIEW_* variables onto raw.
func applyEnv(raw *fileConfig, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	str(EnvAPIURL, &raw.APIURL)
	str(EnvLocale, &raw.Locale)
	str(EnvCurrency, &raw.Currency)
	str(EnvCurrencySymbol, &raw.CurrencySymbol)
	str(EnvLogFile, &raw.LogFile)

	if v, ok := lookup(EnvRequestTimeout); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: want a positive number of seconds, got %q", EnvRequestTimeout, v)
		}
		raw.TimeoutSeconds = n
	}
	return nil
}
