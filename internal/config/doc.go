// Package config loads and validates imdbtop configuration.
//
// Settings come from an optional TOML file, then from environment variables
// such as GCS_BUCKET and CHROME_PATH, and finally from built-in defaults for
// anything still unset. Command-line flags are applied on top by the CLI.
package config
