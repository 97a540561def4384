package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockAnalyzer/internal/model"
)

// SQLiteStore persists fetched bars to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite bar cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol  TEXT    NOT NULL,
			ts      INTEGER NOT NULL,
			open    REAL,
			high    REAL,
			low     REAL,
			close   REAL,
			volume  REAL,
			PRIMARY KEY (symbol, ts)
		)`,

		`CREATE TABLE IF NOT EXISTS fetch_ranges (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT    NOT NULL,
			source     TEXT    NOT NULL,
			from_ts    INTEGER NOT NULL,
			to_ts      INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ranges_symbol ON fetch_ranges(symbol, source)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// SaveBars upserts bars and records the fetched range in one transaction.
func (s *SQLiteStore) SaveBars(symbol, source string, from, to time.Time, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO daily_bars (symbol, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, ts) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %s %s: %w", symbol, b.Time.Format("2006-01-02"), err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO fetch_ranges (symbol, source, from_ts, to_ts, fetched_at)
		VALUES (?,?,?,?,?)`,
		symbol, source, from.Unix(), to.Unix(), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("insert range: %w", err)
	}
	return tx.Commit()
}

// LoadBars returns cached bars within [from, to] in ascending order.
func (s *SQLiteStore) LoadBars(symbol string, from, to time.Time) ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume FROM daily_bars
		WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		symbol, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Covers reports whether a single earlier fetch from source spans [from, to].
func (s *SQLiteStore) Covers(symbol, source string, from, to time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM fetch_ranges
		WHERE symbol = ? AND source = ? AND from_ts <= ? AND to_ts >= ?`,
		symbol, source, from.Unix(), to.Unix()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query ranges: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite bar cache")
	return s.db.Close()
}
