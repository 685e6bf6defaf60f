package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"

	"adbdesk/pkg/adb"
	"adbdesk/pkg/types"
)

// ========================================
// MetadataStore - SQLite 设备元数据
// ========================================

var ErrMetadataNotFound = errors.New("no metadata for device")

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const metadataSchema = `
CREATE TABLE IF NOT EXISTS device_metadata (
    serial TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS known_devices (
    serial TEXT PRIMARY KEY,
    model TEXT NOT NULL DEFAULT '',
    first_seen INTEGER NOT NULL,
    last_seen INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_known_devices_last_seen ON known_devices(last_seen DESC);
`

// MetadataStore keeps user labels for devices and the list of every device
// ever attached.
type MetadataStore struct {
	db     *sql.DB
	dbPath string

	stmtGet      *sql.Stmt
	stmtList     *sql.Stmt
	stmtUpsert   *sql.Stmt
	stmtDelete   *sql.Stmt
	stmtSeen     *sql.Stmt
	stmtKnown    *sql.Stmt
	stmtForget   *sql.Stmt
	closeTargets []*sql.Stmt
}

// NewMetadataStore opens <dataDir>/metadata.db.
func NewMetadataStore(dataDir string) (*MetadataStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "metadata.db")

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // 单写入
	db.SetMaxIdleConns(1)

	s := &MetadataStore{db: db, dbPath: dbPath}
	if _, err := db.Exec(metadataSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	if err := s.prepare(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return s, nil
}

func (s *MetadataStore) prepare() error {
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtGet, `SELECT serial, label, icon, color, updated_at FROM device_metadata WHERE serial = ?`},
		{&s.stmtList, `SELECT serial, label, icon, color, updated_at FROM device_metadata ORDER BY serial`},
		{&s.stmtUpsert, `INSERT INTO device_metadata (serial, label, icon, color, updated_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(serial) DO UPDATE SET label = excluded.label, icon = excluded.icon,
			color = excluded.color, updated_at = excluded.updated_at`},
		{&s.stmtDelete, `DELETE FROM device_metadata WHERE serial = ?`},
		{&s.stmtSeen, `INSERT INTO known_devices (serial, model, first_seen, last_seen) VALUES (?, ?, ?, ?)
			ON CONFLICT(serial) DO UPDATE SET last_seen = excluded.last_seen,
			model = CASE WHEN excluded.model != '' THEN excluded.model ELSE known_devices.model END`},
		{&s.stmtKnown, `SELECT serial, model, first_seen, last_seen FROM known_devices ORDER BY last_seen DESC, serial`},
		{&s.stmtForget, `DELETE FROM known_devices WHERE serial = ?`},
	}
	for _, st := range stmts {
		prepared, err := s.db.Prepare(st.query)
		if err != nil {
			return err
		}
		*st.dst = prepared
		s.closeTargets = append(s.closeTargets, prepared)
	}
	return nil
}

func validateMetadata(m types.DeviceMetadata) error {
	if err := adb.ValidateDeviceID(m.Serial); err != nil {
		return err
	}
	if utf8.RuneCountInString(m.Label) > 64 {
		return fmt.Errorf("label too long (max 64 characters)")
	}
	if utf8.RuneCountInString(m.Icon) > 32 {
		return fmt.Errorf("icon name too long (max 32 characters)")
	}
	if m.Color != "" && !colorPattern.MatchString(m.Color) {
		return fmt.Errorf("invalid color %q, expected #RRGGBB", m.Color)
	}
	return nil
}

// Get returns ErrMetadataNotFound for devices never labelled.
func (s *MetadataStore) Get(serial string) (types.DeviceMetadata, error) {
	m, err := scanMetadata(s.stmtGet.QueryRow(serial))
	if errors.Is(err, sql.ErrNoRows) {
		return types.DeviceMetadata{}, ErrMetadataNotFound
	}
	return m, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMetadata(row rowScanner) (types.DeviceMetadata, error) {
	var m types.DeviceMetadata
	var updated int64
	if err := row.Scan(&m.Serial, &m.Label, &m.Icon, &m.Color, &updated); err != nil {
		return types.DeviceMetadata{}, err
	}
	m.UpdatedAt = time.UnixMilli(updated)
	return m, nil
}

func (s *MetadataStore) List() ([]types.DeviceMetadata, error) {
	rows, err := s.stmtList.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	list := []types.DeviceMetadata{}
	for rows.Next() {
		m, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Put inserts or replaces m and stamps UpdatedAt.
func (s *MetadataStore) Put(m types.DeviceMetadata) (types.DeviceMetadata, error) {
	if err := validateMetadata(m); err != nil {
		return types.DeviceMetadata{}, err
	}
	m.UpdatedAt = time.Now().Truncate(time.Millisecond)
	if _, err := s.stmtUpsert.Exec(m.Serial, m.Label, m.Icon, m.Color, m.UpdatedAt.UnixMilli()); err != nil {
		return types.DeviceMetadata{}, fmt.Errorf("failed to save metadata: %w", err)
	}
	return m, nil
}

func (s *MetadataStore) Delete(serial string) error {
	if _, err := s.stmtDelete.Exec(serial); err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	return nil
}

// RecordSeen upserts serial into known_devices. An empty model keeps the
// one recorded earlier.
func (s *MetadataStore) RecordSeen(serial, model string, at time.Time) error {
	ms := at.UnixMilli()
	if _, err := s.stmtSeen.Exec(serial, model, ms, ms); err != nil {
		return fmt.Errorf("failed to record device: %w", err)
	}
	return nil
}

// KnownDevices is most recently seen first.
func (s *MetadataStore) KnownDevices() ([]types.KnownDevice, error) {
	rows, err := s.stmtKnown.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list known devices: %w", err)
	}
	defer rows.Close()

	list := []types.KnownDevice{}
	for rows.Next() {
		var d types.KnownDevice
		var first, last int64
		if err := rows.Scan(&d.Serial, &d.Model, &first, &last); err != nil {
			return nil, err
		}
		d.FirstSeen = time.UnixMilli(first)
		d.LastSeen = time.UnixMilli(last)
		list = append(list, d)
	}
	return list, rows.Err()
}

// Forget removes serial from both tables.
func (s *MetadataStore) Forget(serial string) error {
	if _, err := s.stmtForget.Exec(serial); err != nil {
		return fmt.Errorf("failed to forget device: %w", err)
	}
	return s.Delete(serial)
}

func (s *MetadataStore) Close() error {
	for _, st := range s.closeTargets {
		st.Close()
	}
	return s.db.Close()
}
