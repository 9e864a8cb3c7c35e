/*
Package sqlite provides SQLite-backed persistence for rate plans.

PURPOSE:
  Stores named rate plans (tariff documents operators manage over the
  API). Computed pay is never stored, only the configuration it is
  computed from. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  rate_plans: Versioned tariff documents, addressable by id or name

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/robopay.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - factory/rates.go: The tariff document schema stored in rate_plans
  - api/handlers.go: HTTP surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrDuplicatePlanName is returned when a plan name is already taken.
var ErrDuplicatePlanName = errors.New("rate plan name already exists")

// Store implements rate plan persistence using SQLite.
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
	-- Rate plans (versioned tariff documents)
	CREATE TABLE IF NOT EXISTS rate_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		document_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rate_plans_name
		ON rate_plans(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RATE PLAN STORE
// =============================================================================

// RatePlanRecord is a stored rate plan with its JSON tariff document.
type RatePlanRecord struct {
	ID           string
	Name         string
	DocumentJSON string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SavePlan inserts a plan or, when the id exists, replaces its document
// and bumps the version.
func (s *Store) SavePlan(ctx context.Context, plan RatePlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rate_plans (id, name, document_json, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document_json = excluded.document_json,
			version = rate_plans.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.DocumentJSON, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicatePlanName
		}
		return fmt.Errorf("failed to save rate plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID. Returns nil when the plan does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*RatePlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanPlan(s.db.QueryRowContext(ctx,
		"SELECT id, name, document_json, version, created_at, updated_at FROM rate_plans WHERE id = ?",
		id,
	))
}

// GetPlanByName retrieves a plan by its unique name.
func (s *Store) GetPlanByName(ctx context.Context, name string) (*RatePlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanPlan(s.db.QueryRowContext(ctx,
		"SELECT id, name, document_json, version, created_at, updated_at FROM rate_plans WHERE name = ?",
		name,
	))
}

func scanPlan(row *sql.Row) (*RatePlanRecord, error) {
	var p RatePlanRecord
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &p.DocumentJSON, &p.Version, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// ListPlans returns all plans ordered by name.
func (s *Store) ListPlans(ctx context.Context) ([]RatePlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, document_json, version, created_at, updated_at FROM rate_plans ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []RatePlanRecord
	for rows.Next() {
		var p RatePlanRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.DocumentJSON, &p.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan. Returns false when no plan had the ID.
func (s *Store) DeletePlan(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM rate_plans WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Reset clears all data. For tests only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM rate_plans")
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
