package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/zenith-framework/zendev/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed history store for check runs and releases.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.zendev/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".zendev", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// SaveRun stores a run report with its step results.
func (s *Store) SaveRun(ctx context.Context, report *domain.RunReport) error {
	if report.ID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, ended_at, failed, bench)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			failed = excluded.failed,
			bench = excluded.bench
	`, report.ID, report.StartedAt.UTC(), report.EndedAt.UTC(), report.Failed, report.Bench)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM step_results WHERE run_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing step results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO step_results (run_id, position, step_id, name, status, exit_code, output, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, result := range report.Results {
		if _, err := stmt.ExecContext(ctx, report.ID, i, result.StepID, result.Name,
			string(result.Status), result.ExitCode, result.Output, result.Duration.Nanoseconds()); err != nil {
			return fmt.Errorf("saving step result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run report by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at, failed, bench
		FROM runs WHERE id = ?
	`, id)

	report, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	results, err := s.stepResults(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Results = results

	return report, nil
}

// ListRuns returns recent runs with their step results, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.RunReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, failed, bench
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.RunReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		var report domain.RunReport
		var startedAt, endedAt sql.NullTime
		if err := rows.Scan(&report.ID, &startedAt, &endedAt, &report.Failed, &report.Bench); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if startedAt.Valid {
			report.StartedAt = startedAt.Time
		}
		if endedAt.Valid {
			report.EndedAt = endedAt.Time
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range reports {
		results, err := s.stepResults(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].Results = results
	}

	return reports, nil
}

// SaveRelease stores a release record.
func (s *Store) SaveRelease(ctx context.Context, release *domain.Release) error {
	if release.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO releases (id, previous_version, version, tag, commit_hash, published, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			previous_version = excluded.previous_version,
			version = excluded.version,
			tag = excluded.tag,
			commit_hash = excluded.commit_hash,
			published = excluded.published,
			url = excluded.url
	`, release.ID, release.PreviousVersion.String(), release.Version.String(),
		release.Tag, release.CommitHash, release.Published, release.URL, release.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving release: %w", err)
	}
	return nil
}

// ListReleases returns recent releases, most recent first.
func (s *Store) ListReleases(ctx context.Context, limit int) ([]domain.Release, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, previous_version, version, tag, commit_hash, published, url, created_at
		FROM releases ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying releases: %w", err)
	}
	defer rows.Close()

	var releases []domain.Release //nolint:prealloc // size unknown from query
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, *release)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating releases: %w", err)
	}

	return releases, nil
}

// Prune keeps the most recent 'keep' runs and releases, deleting the rest.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM releases WHERE id NOT IN (
			SELECT id FROM releases ORDER BY created_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning releases: %w", err)
	}

	return nil
}

// stepResults loads step results for a run, in pipeline order.
func (s *Store) stepResults(ctx context.Context, runID string) ([]domain.StepResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT step_id, name, status, exit_code, output, duration_ns
		FROM step_results WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying step results: %w", err)
	}
	defer rows.Close()

	var results []domain.StepResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var result domain.StepResult
		var status string
		var durationNs int64
		if err := rows.Scan(&result.StepID, &result.Name, &status,
			&result.ExitCode, &result.Output, &durationNs); err != nil {
			return nil, fmt.Errorf("scanning step result: %w", err)
		}
		result.Status = domain.StepStatus(status)
		result.Duration = time.Duration(durationNs)
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating step results: %w", err)
	}

	return results, nil
}

// scanRun scans a single run row.
func scanRun(row *sql.Row) (*domain.RunReport, error) {
	var report domain.RunReport
	var startedAt, endedAt sql.NullTime
	if err := row.Scan(&report.ID, &startedAt, &endedAt, &report.Failed, &report.Bench); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if startedAt.Valid {
		report.StartedAt = startedAt.Time
	}
	if endedAt.Valid {
		report.EndedAt = endedAt.Time
	}
	return &report, nil
}

// scanRelease scans a release from *sql.Rows.
func scanRelease(rows *sql.Rows) (*domain.Release, error) {
	var release domain.Release
	var previous, version string
	var createdAt sql.NullTime
	if err := rows.Scan(&release.ID, &previous, &version, &release.Tag,
		&release.CommitHash, &release.Published, &release.URL, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning release: %w", err)
	}

	var err error
	if release.PreviousVersion, err = domain.ParseVersion(previous); err != nil {
		return nil, fmt.Errorf("parsing previous version: %w", err)
	}
	if release.Version, err = domain.ParseVersion(version); err != nil {
		return nil, fmt.Errorf("parsing version: %w", err)
	}
	if createdAt.Valid {
		release.CreatedAt = createdAt.Time
	}

	return &release, nil
}
