package storage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JaimeStill/revisor/pkg/envvar"
)

const defaultContainer = "reviews"

// Azure container names: 3-63 lowercase letters, digits and single hyphens,
// starting and ending with a letter or digit.
var containerPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Config selects the blob account and the container reports are kept in.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

// Env names the variables that override Config. Empty names are skipped.
type Env struct {
	ContainerName    string
	ConnectionString string
}

// Finalize defaults the container, applies env overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = defaultContainer
	}
	if env != nil {
		envvar.String(env.ContainerName, &c.ContainerName)
		envvar.String(env.ConnectionString, &c.ConnectionString)
	}

	if strings.TrimSpace(c.ConnectionString) == "" {
		return fmt.Errorf("connection_string required")
	}
	if n := len(c.ContainerName); n < 3 || n > 63 || !containerPattern.MatchString(c.ContainerName) {
		return fmt.Errorf("invalid container_name %q", c.ContainerName)
	}
	return nil
}

// Merge takes every non-empty field from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}
