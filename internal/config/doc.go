// Package config loads LeadFlow's startup configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/leadflow/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Load .env from the working directory (existing variables win)
//  6. Apply LEADFLOW_ENDPOINT, LEADFLOW_LOG_FILE and LEADFLOW_EXPORT_DIR
//
// Command-line flags are applied by the caller after Load returns.
//
// # TOML Format
//
//	endpoint        = "http://127.0.0.1:8000/run-leadflow-pipeline"
//	default_query   = "technology companies in South Loop Chicago"
//	default_limit   = 10
//	request_timeout = "0s"
//	export_dir      = "~/.local/share/leadflow/exports"
//	log_file        = "~/.local/share/leadflow/leadflow.log"
//
// All fields are optional. default_limit is clamped to [1,25]. A zero
// request_timeout means the request is bounded only by cancellation. Setting
// log_file to an empty string disables the diagnostic log.
//
// Missing config files are NOT an error - defaults are used instead.
package config
