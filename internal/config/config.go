// Package config loads client configuration from file, environment, and
// command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// Defaults applied before any other configuration source.
const (
	DefaultOutput   = "table"
	DefaultPageSize = 50

	// ConfigFileName is looked up in the current directory and the data
	// directory, in that order.
	ConfigFileName = "pgscope.yaml"

	metadataFileName = "metadata.db"
)

// Config is the resolved client configuration.
type Config struct {
	// DataDir holds the metadata database and shell history.
	DataDir string `koanf:"data_dir"`

	// Output selects the render format: table, json, or csv.
	Output string `koanf:"output"`

	// PageSize is the default page size for table browsing.
	PageSize int `koanf:"page_size"`

	Verbose bool `koanf:"verbose"`
}

// MetadataPath returns the location of the metadata database.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.DataDir, metadataFileName)
}

// HistoryPath returns the location of the interactive shell history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history")
}

// DefaultDataDir resolves the per-user data directory.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".pgscope"
	}
	return filepath.Join(base, "pgscope")
}
