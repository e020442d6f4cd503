// Package ui provides the terminal interface for opsview.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It owns no retrieval logic: it activates a
// listing.Controller, then consumes the controller's view-state stream one
// message at a time and renders whatever the latest state says.
//
// # Package Structure
//
//   - app.go: Model, Update loop, stream commands and the Run function
//   - header.go: Status bar and command bar
//   - list.go: Operations list, row formatting and the titled box frame
//   - help.go: Help overlay built from the key map
//   - keys.go: Key bindings
//   - theme.go: Color themes and status colors
//   - style_helpers.go: Background-preserving render helpers
//
// # Event Flow
//
//  1. Init returns a command that calls Controller.Activate
//  2. activatedMsg stores the Subscription and arms waitForStateCmd
//  3. Each stateMsg replaces the view and re-arms the wait
//  4. Messages from a superseded Subscription are ignored
//  5. Quit disposes the controller and saves preferences
//
// # Search
//
// "/" focuses the search field. Every edit calls Controller.SetSearchTerm,
// which re-derives the projection synchronously, so the list narrows while
// typing. A term typed before the first activation completes is held and
// applied once the controller is active.
//
// # Key Bindings
//
//   - /: Search descriptions (enter keeps the term, esc clears it)
//   - j/k, g/G, pgup/pgdown: Move selection
//   - r: Reload (new activation, also the retry after a failure)
//   - T: Cycle theme
//   - h or ?: Toggle help
//   - e or Ctrl+C: Exit
//
// # Usage Example
//
//	res, err := ui.Run(ui.Options{
//		Context:    ctx,
//		Controller: ctrl,
//		Locale:     loc,
//		ThemeName:  p.Theme,
//		Search:     p.LastSearch,
//	})
package ui
