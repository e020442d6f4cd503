// Package config handles loading and parsing the opsview configuration file.
//
// # Overview
//
// This package reads a TOML file describing where the operations backend
// lives, which locale and currency the display uses, and which status codes the
// backend is known to send. Everything is optional: opsview runs against a
// local backend with Brazilian Portuguese formatting when no file exists.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/opsview/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Environment Overrides
//
// Non-empty environment variables take precedence over the file, and also
// apply when no file exists:
//
//	OPSVIEW_API_URL                  api_url
//	OPSVIEW_LOCALE                   locale
//	OPSVIEW_CURRENCY                 currency
//	OPSVIEW_CURRENCY_SYMBOL          currency_symbol
//	OPSVIEW_REQUEST_TIMEOUT_SECONDS  request_timeout_seconds
//	OPSVIEW_LOG_FILE                 log_file
//
// LoadEnvFile reads a dotenv file into the process environment before Load
// runs. Variables already set in the environment keep their value.
//
// # Default Values
//
//   - Config file: ~/.config/opsview/config.toml
//   - API URL: http://127.0.0.1:8080
//   - Locale: pt-BR
//   - Currency: BRL (symbol R$; other currencies show their ISO code)
//   - Request timeout: 10 seconds
//   - Log file: ~/.local/state/opsview/opsview.log
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8080"
//	locale = "pt-BR"
//	currency = "BRL"
//	currency_symbol = "R$"
//	request_timeout_seconds = 10
//	log_file = "~/.local/state/opsview/opsview.log"
//
//	[[statuses]]
//	code = "COMPLETED"
//	label = "Completed"
//	icon = "check_circle"
//
//	[labels]
//	Completed = "Concluída"
//
// The statuses table is the closed set of codes the backend declares. When it
// is absent the status package uses its built-in table. Codes are upper-cased
// and must be unique. Labels are translation tokens; the [labels] table maps
// tokens to display text for the configured locale.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Empty or duplicate status codes
//   - A non-positive or non-numeric OPSVIEW_REQUEST_TIMEOUT_SECONDS
//
// The returned Config is loaded once at startup and never mutated afterwards.
package config
