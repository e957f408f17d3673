// Package app provides the orchestration layer for flipclock.
//
// # Overview
//
// This package wires together configuration, logging, the countdown, the
// shared snapshot store and the presentation. It is the composition root
// where all dependencies are initialized and connected.
//
// # Startup
//
//  1. Load configuration from ~/.config/flipclock/config.toml and apply
//     command line overrides
//  2. Open the rotated log file
//  3. Validate the countdown input; a rejection is logged at ERROR and
//     returned, and nothing is mounted
//  4. Create the state.Store, metrics registry and notifier
//  5. Start the HTTP API when http_addr is set
//  6. Run the TUI, or the headless ticker, until expiry, quit or cancel
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read config, apply flags
//	       ├─────> countdown.ParseInput() Validate target and labels
//	       ├─────> state.Store{}         Shared snapshot for HTTP clients
//	       ├─────> httpapi.Run()         Optional, background
//	       └─────> ui.Run()              TUI (blocks), or runHeadless()
//
//	Countdown hooks (run on the ticking goroutine):
//	┌─────────────────────────────────────────┐
//	│ OnTick   ─> store.Update, metrics       │
//	│ OnFlip   ─> metrics                     │
//	│ OnExpire ─> store.Update, metrics,      │
//	│             notifier (background)       │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - Invalid date, a target that already passed, or a bad label list
//
// Recoverable errors (logged, the countdown continues):
//   - HTTP API listen or serve failures
//   - Notification delivery failures
//   - Preference save failures
package app
