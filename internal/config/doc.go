// Package config centralizes application configuration for tabpulse.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (config.yaml or configs/config.yaml), then environment variables with the
// TABPULSE prefix, which always win. Sections cover the HTTP server, logging,
// output paths, and the inference-engine thresholds.
package config
