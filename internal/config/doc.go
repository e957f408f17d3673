// Package config loads the flipclock configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flipclock/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but fields are missing or empty, keep the defaults
//
// Files ending in .yaml or .yml are decoded as YAML; everything else is TOML.
// Both encodings share the same keys.
//
// # Example
//
//	target = "2026-12-31T23:59:59Z"
//	caption = "New Year"
//	labels = "Days|Hours|Minutes"
//	tick = "1s"
//	flip_duration = "500ms"
//	curve = "linear"
//	policy = "coalesce"
//	exit_on_expire = false
//	log_file = "~/.local/state/flipclock/flipclock.log"
//	log_level = "info"
//	http_addr = "127.0.0.1:7490"
//	notify = ["ntfy://ntfy.sh/my-topic"]
//
// schedule may replace target with a standard five-field cron expression;
// the countdown then aims at its next occurrence.
//
// # Validation
//
// Load rejects unparsable durations, a zero tick, unknown curves, unknown
// flip policies and unknown log levels. The target itself is validated by
// countdown.ParseInput, not here, since "already passed" depends on the
// moment the countdown starts.
package config
