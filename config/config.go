// Package config defines the structures used to configure a fourws vehicle and the services that
// drive it, and how to read them from disk.
package config

import (
	"github.com/pkg/errors"

	"github.com/steerlab/fourws/logging"
)

// Config is the top level configuration file.
type Config struct {
	ConfigFilePath string `json:"-"`

	Vehicle       VehicleConfig  `json:"vehicle"`
	RemoteControl AttributeMap   `json:"remote_control,omitempty"`
	LogLevel      *logging.Level `json:"log_level,omitempty"`
}

// Ensure validates the config and fills in the vehicle defaults.
func (c *Config) Ensure() error {
	if err := c.Vehicle.Validate("vehicle"); err != nil {
		return errors.Wrap(err, "error validating vehicle")
	}
	c.Vehicle = c.Vehicle.WithDefaults()
	return nil
}
