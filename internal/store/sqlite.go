package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
)

// SQLiteStore caches price bars in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log logging.Logger
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string, log logging.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "create db directory")
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL mode for concurrent readers while the collector writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	log.Infof("sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_bars (
			symbol     TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date   TEXT NOT NULL,
			ts         INTEGER NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     REAL,
			PRIMARY KEY (symbol, start_date, end_date, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_range ON price_bars(symbol, start_date, end_date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// LoadBars returns the cached bars for the exact (symbol, start, end) key,
// ordered by timestamp, or ErrCacheMiss.
func (s *SQLiteStore) LoadBars(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume
		FROM price_bars
		WHERE symbol = ? AND start_date = ? AND end_date = ?
		ORDER BY ts`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, errors.Wrap(err, "query bars")
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, errors.Wrap(err, "scan bar")
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate bars")
	}
	if len(bars) == 0 {
		return nil, ErrCacheMiss
	}
	return bars, nil
}

// SaveBars replaces the cached entry for the (symbol, start, end) key.
func (s *SQLiteStore) SaveBars(symbol string, start, end time.Time, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	startStr, endStr := start.Format(dateLayout), end.Format(dateLayout)
	if _, err := tx.Exec(`DELETE FROM price_bars WHERE symbol = ? AND start_date = ? AND end_date = ?`,
		symbol, startStr, endStr); err != nil {
		return errors.Wrap(err, "clear stale bars")
	}

	stmt, err := tx.Prepare(`INSERT INTO price_bars
		(symbol, start_date, end_date, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, startStr, endStr, b.Time.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return errors.Wrap(err, "insert bar")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}

	s.log.Infof("cached %d bars for %s [%s, %s]", len(bars), symbol, startStr, endStr)
	return nil
}

func (s *SQLiteStore) Close() error {
	s.log.Infof("closing sqlite store")
	return s.db.Close()
}
