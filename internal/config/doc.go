// Package config loads the nimbus configuration file.
//
// # Resolution
//
// Load reads TOML through viper in this order, later sources winning:
//
//  1. built-in defaults
//  2. the file given with --config, or ~/.config/nimbus/config.toml
//  3. NIMBUS_<KEY> environment variables (NIMBUS_API_BASE, NIMBUS_DEBOUNCE, ...)
//
// A missing file is not an error. A file that exists but does not parse
// is, and so are values that cannot be repaired (negative rates or
// intervals, unknown log levels). Empty or out-of-range values fall back to
// their defaults instead.
//
// # Keys
//
//	api_base         = "http://127.0.0.1:5000"  # weather collaborator
//	api_timeout      = "10s"                    # per request
//	api_rate         = 5                        # requests per second, 0 = unlimited
//	debounce         = "300ms"                  # search pause before autocomplete
//	forecast_days    = 5                        # 1..10
//	hourly_hours     = 12                       # 1..48
//	refresh_interval = "10m"                    # 0 disables auto-refresh
//	dark_icons       = false
//	log_file         = "~/.local/state/nimbus/nimbus.log"
//	log_level        = "info"                   # debug|info|warn|error
//
// Durations use Go syntax ("1m30s"). Paths starting with ~ are expanded.
package config
