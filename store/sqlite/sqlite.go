/*
Package sqlite provides the SQLite-backed holiday calendar store.

PURPOSE:
  The pay engine is stateless; the one collaborator its callers must
  query before invoking it is the public-holiday calendar for the pay
  period. This package owns that calendar's persistence. Contracts,
  timesheets and pay runs are deliberately NOT persisted here; they
  arrive fully-formed in the compute request.

KEY TABLE:
  holidays: id, company_id ('' = global), date (ISO), name, type

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  dates, err := store.DatesInRange(ctx, "farm-1", from, to)
  result := payroll.ComputePay(entries, contract, dates)

SEE ALSO:
  - calendar: Holiday types and payable-date filtering
  - api/handlers.go: CRUD surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/pay-engine/calendar"
)

// Store persists the holiday calendar in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Holiday calendar (company-specific and global)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'public_holiday',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_company_date
		ON holidays(company_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(company_id, date, name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// SaveHoliday inserts or updates a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, company_id, date, name, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, date, name) DO UPDATE SET
			type = excluded.type
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.CompanyID,
		h.DateKey(),
		h.Name,
		string(h.Type),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListHolidays returns all holidays visible to a company: its own rows plus
// the global defaults. Pass "" to list only the global set.
func (s *Store) ListHolidays(ctx context.Context, companyID string) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, company_id, date, name, type
		FROM holidays
		WHERE company_id = ? OR company_id = ''
		ORDER BY date ASC, name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// DatesInRange returns the payable public-holiday dates (ISO YYYY-MM-DD)
// visible to a company within [from, to], in the list shape ComputePay
// consumes. Observances are excluded.
func (s *Store) DatesInRange(ctx context.Context, companyID string, from, to time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, company_id, date, name, type
		FROM holidays
		WHERE (company_id = ? OR company_id = '')
		  AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query,
		companyID,
		from.UTC().Format("2006-01-02"),
		to.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays, err := scanHolidays(rows)
	if err != nil {
		return nil, err
	}
	return calendar.PayableDates(holidays), nil
}

func scanHolidays(rows *sql.Rows) ([]calendar.Holiday, error) {
	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		var dateStr, typeStr string
		if err := rows.Scan(&h.ID, &h.CompanyID, &dateStr, &h.Name, &typeStr); err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue // Skip rows with unparseable dates
		}
		h.Date = t
		h.Type = calendar.Type(typeStr)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
