package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS locations (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	council     TEXT,
	lat         REAL,
	lon         REAL,
	data        TEXT NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_locations_position ON locations(position);
CREATE INDEX IF NOT EXISTS idx_locations_council ON locations(council);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceLocations(ctx context.Context, groups []model.LocationGroup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations`); err != nil {
		return eris.Wrap(err, "sqlite: clear locations")
	}

	now := time.Now().UTC()
	for i, g := range groups {
		data, err := json.Marshal(g)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal location %s", g.Name)
		}

		var lat, lon any
		if g.Address.Geocoded() {
			lat, lon = *g.Address.Lat, *g.Address.Lon
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO locations (id, position, name, council, lat, lon, data, imported_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), i, g.Name, g.Council, lat, lon, string(data), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert location %s", g.Name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func (s *SQLiteStore) ListLocations(ctx context.Context) ([]model.LocationGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM locations ORDER BY position`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list locations")
	}
	defer rows.Close() //nolint:errcheck

	var groups []model.LocationGroup
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan location")
		}
		var g model.LocationGroup
		if err := json.Unmarshal([]byte(data), &g); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal location")
		}
		groups = append(groups, g)
	}
	return groups, eris.Wrap(rows.Err(), "sqlite: iterate locations")
}

func (s *SQLiteStore) CountLocations(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count locations")
}
