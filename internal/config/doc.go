// Package config provides configuration structures and utilities for the
// site catalog CLI. It defines the main configuration options for search,
// enrichment, and report generation, plus the optional .sitecatalog YAML
// file that extends the built-in detection tables.
package config
