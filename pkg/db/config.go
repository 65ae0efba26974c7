package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile *Profile
	Device  *Device
	Lights  []device.Light
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.Profile == nil {
		return "0.0.0.0:8080"
	}
	return c.Profile.APIAddress()
}

// RefreshInterval returns the status auto-refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	if c.Profile == nil || c.Profile.RefreshSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Profile.RefreshSeconds) * time.Second
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	// Default device endpoint is optional; connect requests can name
	// an explicit endpoint instead.
	dev, err := db.Devices().GetDefault(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrDeviceNotFound) {
		return nil, fmt.Errorf("failed to get default device: %w", err)
	}
	config.Device = dev

	lights, err := db.Lights().List(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load light roster: %w", err)
	}
	config.Lights = lights

	return config, nil
}
