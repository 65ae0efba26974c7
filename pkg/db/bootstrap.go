package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Factory defaults matching the stock ESP32 firmware.
const (
	DefaultProfileName = "default"
	DefaultDeviceName  = "esp32"
	DefaultDeviceHost  = "192.168.1.100"
	DefaultDevicePort  = 8080
)

var defaultRoster = []struct {
	ID          string
	DisplayName string
}{
	{"builtin", "Built-in LED"},
	{"light1", "Light 1"},
	{"light2", "Light 2"},
	{"light3", "Light 3"},
	{"light4", "Light 4"},
}

// NeedsBootstrap reports whether no profile exists yet.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count profiles: %w", err)
	}
	return count == 0, nil
}

// Bootstrap seeds an active default profile, the factory device endpoint
// and the stock light roster. It is a no-op if a profile already exists.
func (db *DB) Bootstrap(ctx context.Context) error {
	needed, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return err
	}
	if !needed {
		return nil
	}

	log.Info().Msg("bootstrapping database with factory defaults")

	return db.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (name, is_active) VALUES (?, 1)
		`, DefaultProfileName)
		if err != nil {
			return fmt.Errorf("create default profile: %w", err)
		}
		profileID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("default profile id: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO devices (profile_id, name, transport, host, port, is_default)
			VALUES (?, ?, 'tcp', ?, ?, 1)
		`, profileID, DefaultDeviceName, DefaultDeviceHost, DefaultDevicePort)
		if err != nil {
			return fmt.Errorf("create default device: %w", err)
		}

		for i, l := range defaultRoster {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO lights (id, profile_id, display_name, position)
				VALUES (?, ?, ?, ?)
			`, l.ID, profileID, l.DisplayName, i)
			if err != nil {
				return fmt.Errorf("seed light %s: %w", l.ID, err)
			}
		}
		return nil
	})
}
