// Package app provides the orchestration layer for the opsview application.
//
// # Overview
//
// This package wires configuration, preferences, logging, locale, the
// operations client and the listing controller into the TUI. It is the
// composition root: every dependency is created here and handed down.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/opsview/config.toml
//	       ├─────> prefs.Load()           Theme and last search
//	       ├─────> logging.Setup()        JSON log file
//	       ├─────> locale.FromConfig()    pt-BR / BRL by default
//	       ├─────> operations.NewClient() HTTP source
//	       ├─────> status.NewMapper()     Configured or default status table
//	       ├─────> listing.New()          Controller
//	       └─────> ui.Run()               Start TUI (blocks)
//
// Nothing refreshes in the background. The controller retrieves the list once per
// activation; the UI activates on start and again when the user reloads.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Invalid locale, currency or API URL
//   - The TUI failing to start
//
// Recoverable errors:
//   - Log file cannot be opened (logging is discarded)
//   - Retrieval failures (shown in the UI, retried with "r")
//   - Preferences cannot be saved (logged)
//
// # Shutdown
//
// When the UI exits, the controller is disposed, in-flight retrievals are
// waited for, and the final theme and search term are written to prefs.
//
// # Usage Example
//
//	if err := app.Run(ctx, app.Options{Verbose: true}); err != nil {
//		log.Fatalf("opsview failed: %v", err)
//	}
package app
