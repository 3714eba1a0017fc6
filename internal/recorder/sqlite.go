package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockAnalyzer/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the API server read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id          TEXT PRIMARY KEY,
			symbol      TEXT NOT NULL,
			interval    TEXT NOT NULL,
			bar_time    INTEGER NOT NULL,
			close       REAL,
			rsi         REAL,
			macd        REAL,
			signal      REAL,
			vwap        REAL,
			bb_upper    REAL,
			bb_middle   REAL,
			bb_lower    REAL,
			total_score REAL,
			tier_label  TEXT,
			rsi_zone    TEXT,
			recorded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol ON snapshots(symbol, bar_time)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			interval  TEXT,
			from_zone TEXT,
			to_zone   TEXT,
			rsi       REAL,
			price     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", strings.TrimSpace(s)[:30], err)
		}
	}
	return nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recorded := snap.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	_, err := r.db.Exec(`INSERT OR REPLACE INTO snapshots
		(id, symbol, interval, bar_time, close, rsi, macd, signal, vwap,
		 bb_upper, bb_middle, bb_lower, total_score, tier_label, rsi_zone, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.Symbol, string(snap.Interval), snap.BarTime.Unix(), snap.Close,
		nullable(snap.RSI), nullable(snap.MACD), nullable(snap.Signal), nullable(snap.VWAP),
		nullable(snap.BBUpper), nullable(snap.BBMiddle), nullable(snap.BBLower),
		snap.TotalScore, snap.TierLabel, string(snap.RSIZone), recorded.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.Symbol, err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, symbol, interval, from_zone, to_zone, rsi, price)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Interval),
		string(evt.From), string(evt.To), evt.RSI, evt.Price,
	)
	return err
}

// LatestSnapshots returns up to limit snapshots for symbol, newest bar first.
func (r *SQLiteRecorder) LatestSnapshots(symbol string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := r.db.Query(`SELECT id, symbol, interval, bar_time, close, rsi, macd, signal, vwap,
		bb_upper, bb_middle, bb_lower, total_score, tier_label, rsi_zone, recorded_at
		FROM snapshots WHERE symbol = ? ORDER BY bar_time DESC, id DESC LIMIT ?`,
		strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			s                                       Snapshot
			interval, zone                          string
			barTime, recordedAt                     int64
			rsi, macd, signal, vwap, up, mid, lower sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Symbol, &interval, &barTime, &s.Close,
			&rsi, &macd, &signal, &vwap, &up, &mid, &lower,
			&s.TotalScore, &s.TierLabel, &zone, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Interval = model.Interval(interval)
		s.RSIZone = model.RSIZone(zone)
		s.BarTime = time.Unix(barTime, 0).UTC()
		s.RecordedAt = time.Unix(recordedAt, 0).UTC()
		s.RSI, s.MACD, s.Signal, s.VWAP = ptr(rsi), ptr(macd), ptr(signal), ptr(vwap)
		s.BBUpper, s.BBMiddle, s.BBLower = ptr(up), ptr(mid), ptr(lower)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
