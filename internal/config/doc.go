// Package config provides configuration structures and utilities for astralyrics.
// It defines the endpoints, transport limits, and display settings, and loads
// overrides from an optional YAML file.
package config
