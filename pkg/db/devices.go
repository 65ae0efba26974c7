package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var ErrDeviceNotFound = errors.New("device not found")

// Transport kinds for saved device endpoints.
const (
	TransportTCP    = "tcp"
	TransportSerial = "serial"
)

// Device is a saved device endpoint: a TCP address or a serial console
// path, scoped to a profile.
type Device struct {
	ID         int64
	ProfileID  int64
	Name       string
	Transport  string
	Host       string
	Port       int
	SerialPort string
	BaudRate   int
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Address returns the host:port for a TCP device.
func (d *Device) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// DeviceStore provides saved endpoint CRUD operations.
type DeviceStore interface {
	Get(ctx context.Context, id int64) (*Device, error)
	GetDefault(ctx context.Context, profileID int64) (*Device, error)
	List(ctx context.Context, profileID int64) ([]*Device, error)
	Create(ctx context.Context, d *Device) error
	Update(ctx context.Context, d *Device) error
	SetDefault(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Devices returns a DeviceStore for this database.
func (db *DB) Devices() DeviceStore {
	return &deviceStore{db: db}
}

type deviceStore struct {
	db *DB
}

const deviceColumns = `id, profile_id, name, transport, host, port, serial_port, baud_rate, is_default, created_at, updated_at`

func scanDevice(row *sql.Row) (*Device, error) {
	d := &Device{}
	var createdAt, updatedAt string
	err := row.Scan(&d.ID, &d.ProfileID, &d.Name, &d.Transport, &d.Host, &d.Port,
		&d.SerialPort, &d.BaudRate, &d.IsDefault, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	d.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	d.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return d, nil
}

func (s *deviceStore) Get(ctx context.Context, id int64) (*Device, error) {
	return scanDevice(s.db.QueryRowContext(ctx, `
		SELECT `+deviceColumns+` FROM devices WHERE id = ?
	`, id))
}

func (s *deviceStore) GetDefault(ctx context.Context, profileID int64) (*Device, error) {
	return scanDevice(s.db.QueryRowContext(ctx, `
		SELECT `+deviceColumns+` FROM devices
		WHERE profile_id = ? AND is_default = 1 LIMIT 1
	`, profileID))
}

func (s *deviceStore) List(ctx context.Context, profileID int64) ([]*Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+deviceColumns+` FROM devices
		WHERE profile_id = ? ORDER BY name
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var devices []*Device
	for rows.Next() {
		d := &Device{}
		var createdAt, updatedAt string
		if err := rows.Scan(&d.ID, &d.ProfileID, &d.Name, &d.Transport, &d.Host, &d.Port,
			&d.SerialPort, &d.BaudRate, &d.IsDefault, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		d.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *deviceStore) Create(ctx context.Context, d *Device) error {
	if d.Transport == "" {
		d.Transport = TransportTCP
	}
	if d.Port == 0 {
		d.Port = 8080
	}
	if d.BaudRate == 0 {
		d.BaudRate = 115200
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (profile_id, name, transport, host, port, serial_port, baud_rate, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ProfileID, d.Name, d.Transport, d.Host, d.Port, d.SerialPort, d.BaudRate, d.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (s *deviceStore) Update(ctx context.Context, d *Device) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE devices
		SET name = ?, transport = ?, host = ?, port = ?, serial_port = ?, baud_rate = ?,
		    is_default = ?, updated_at = datetime('now')
		WHERE id = ?
	`, d.Name, d.Transport, d.Host, d.Port, d.SerialPort, d.BaudRate, d.IsDefault, d.ID)
	return err
}

func (s *deviceStore) SetDefault(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		var profileID int64
		err := tx.QueryRowContext(ctx, `SELECT profile_id FROM devices WHERE id = ?`, id).Scan(&profileID)
		if err == sql.ErrNoRows {
			return ErrDeviceNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE devices SET is_default = 0 WHERE profile_id = ?`, profileID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE devices SET is_default = 1 WHERE id = ?`, id)
		return err
	})
}

func (s *deviceStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
