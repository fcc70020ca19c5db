package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/incentiva/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
)

// DefaultFileName is the database file used when no path is given.
const DefaultFileName = "snapshots.db"

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at dbPath.
// If dbPath is empty, defaults to ~/.incentiva/snapshots.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".incentiva", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save writes rows as a new snapshot in a single transaction.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot, rows []domain.PlanRow) (*domain.Snapshot, error) {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	snap.RowCount = len(rows)
	if snap.Filters == nil {
		snap.Filters = map[domain.Dimension][]string{}
	}

	filtersJSON, err := json.Marshal(snap.Filters)
	if err != nil {
		return nil, fmt.Errorf("marshalling filters: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, source, filters, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Name, snap.Source, string(filtersJSON), snap.RowCount, snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_rows (snapshot_id, position, company, sector, control_type, plan_type,
			vesting_years, max_dilution_pct, clawback, document_count, documents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]
		docs := r.Documents
		if docs == nil {
			docs = []string{}
		}
		docsJSON, err := json.Marshal(docs)
		if err != nil {
			return nil, fmt.Errorf("marshalling documents: %w", err)
		}
		_, err = stmt.ExecContext(ctx, snap.ID, i, r.Company, r.Sector, r.ControlType, r.PlanType,
			nullFloat(r.VestingYears), nullFloat(r.MaxDilutionPct), r.Clawback, r.DocumentCount,
			string(docsJSON))
		if err != nil {
			return nil, fmt.Errorf("saving row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	return &snap, nil
}

// List returns stored snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, filters, row_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		var snap domain.Snapshot
		var filtersJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Source, &filtersJSON,
			&snap.RowCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(filtersJSON), &snap.Filters); err != nil {
			return nil, fmt.Errorf("unmarshaling filters: %w", err)
		}
		if createdAt.Valid {
			snap.CreatedAt = createdAt.Time
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}

	return snaps, nil
}

// Rows returns the rows of a snapshot in their saved order.
func (s *Store) Rows(ctx context.Context, id string) ([]domain.PlanRow, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM snapshots WHERE id = ?", id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("looking up snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT company, sector, control_type, plan_type, vesting_years, max_dilution_pct,
			clawback, document_count, documents
		FROM snapshot_rows
		WHERE snapshot_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot rows: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PlanRow, 0)
	for rows.Next() {
		var r domain.PlanRow
		var vesting, dilution sql.NullFloat64
		var docsJSON string
		if err := rows.Scan(&r.Company, &r.Sector, &r.ControlType, &r.PlanType,
			&vesting, &dilution, &r.Clawback, &r.DocumentCount, &docsJSON); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if err := json.Unmarshal([]byte(docsJSON), &r.Documents); err != nil {
			return nil, fmt.Errorf("unmarshaling documents: %w", err)
		}
		r.VestingYears = floatPtr(vesting)
		r.MaxDilutionPct = floatPtr(dilution)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	return out, nil
}

// Delete removes a snapshot and its rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
