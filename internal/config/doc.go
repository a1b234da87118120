// Package config loads the statbar dashboard configuration.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest):
//
//  1. CLI flags (--theme, --hz, --config)
//  2. YAML config file (.statbar.yaml in the working directory or
//     ~/.config/statbar/.statbar.yaml)
//  3. Hardcoded defaults
//
// # Presets
//
// Each entry under "bars" binds one widget to a named stat. Bounds are
// optional: a bar with no min/max auto-scales to the observed data, and
// explicitly setting one side pins only that side. Example:
//
//	theme: default
//	refresh_hz: 10
//	bars:
//	  - stat: goroutines
//	    show_history: true
//	  - stat: heap
//	    label: Heap In Use
//	    unit: MB
//	    min: 0
package config
