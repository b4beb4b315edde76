// Package config loads and persists comet configuration.
//
// The effective configuration is built by merging, in order: built-in
// defaults, the JSON config file in the platform config directory, COMET_*
// environment variables, and CLI flag overrides.
package config
