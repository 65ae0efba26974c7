package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// LightStore manages the configured light roster for a profile.
type LightStore interface {
	List(ctx context.Context, profileID int64) ([]device.Light, error)
	Replace(ctx context.Context, profileID int64, lights []device.Light) error
	Rename(ctx context.Context, profileID int64, id, displayName string) error
}

// Lights returns a LightStore for this database.
func (db *DB) Lights() LightStore {
	return &lightStore{db: db}
}

type lightStore struct {
	db *DB
}

func (s *lightStore) List(ctx context.Context, profileID int64) ([]device.Light, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, position FROM lights
		WHERE profile_id = ? ORDER BY position, id
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lights []device.Light
	for rows.Next() {
		var l device.Light
		if err := rows.Scan(&l.ID, &l.DisplayName, &l.Position); err != nil {
			return nil, err
		}
		lights = append(lights, l)
	}
	return lights, rows.Err()
}

func (s *lightStore) Replace(ctx context.Context, profileID int64, lights []device.Light) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lights WHERE profile_id = ?`, profileID); err != nil {
			return err
		}
		for i, l := range lights {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO lights (id, profile_id, display_name, position)
				VALUES (?, ?, ?, ?)
			`, l.ID, profileID, l.DisplayName, i)
			if err != nil {
				return fmt.Errorf("insert light %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

func (s *lightStore) Rename(ctx context.Context, profileID int64, id, displayName string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE lights SET display_name = ? WHERE profile_id = ? AND id = ?
	`, displayName, profileID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return device.ErrNotFound
	}
	return nil
}
