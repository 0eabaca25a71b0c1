package cli

import (
	"path/filepath"

	"github.com/ardnew/sitegen/pkg"
)

const (
	// baseConfig is the base name of the user configuration files.
	baseConfig = "config"
	// projectConfig is the configuration file read from the working
	// directory. It overrides the user configuration.
	projectConfig = "." + pkg.Name + ".yaml"
)

// configPath joins elem onto the user configuration directory.
// With no elements it returns the directory itself.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// configFiles returns the YAML configuration files in the order kong
// loads them.
func configFiles() []string {
	return []string{configPath(baseConfig + ".yaml"), projectConfig}
}
