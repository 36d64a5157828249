package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"ChainSentinel/internal/model"
)

// SQLiteRecorder persists refresh history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refresh_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			asset         TEXT,
			currency      TEXT,
			rate          REAL,
			rate_fallback INTEGER,
			price         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_ts ON refresh_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS indicator_rows (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			refresh_id  INTEGER NOT NULL REFERENCES refresh_snapshots(id),
			name        TEXT NOT NULL,
			value       REAL,
			secondary   REAL,
			signal      TEXT,
			available   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_refresh ON indicator_rows(refresh_id)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// RecordRefresh inserts one refresh snapshot and its indicator rows.
func (r *SQLiteRecorder) RecordRefresh(rep *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var price float64
	for _, row := range rep.Rows {
		if row.Name == model.IndicatorRainbow {
			price = row.Value
		}
	}

	res, err := tx.Exec(
		`INSERT INTO refresh_snapshots (timestamp, asset, currency, rate, rate_fallback, price)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rep.GeneratedAt.Unix(), rep.Asset, rep.Currency, rep.Rate, boolToInt(rep.RateFallback), price,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	refreshID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for _, row := range rep.Rows {
		var secondary interface{}
		if row.Secondary != nil {
			secondary = *row.Secondary
		}
		if _, err := tx.Exec(
			`INSERT INTO indicator_rows (refresh_id, name, value, secondary, signal, available)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			refreshID, string(row.Name), row.Value, secondary, string(row.Signal), boolToInt(row.Available),
		); err != nil {
			return fmt.Errorf("insert row %s: %w", row.Name, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
