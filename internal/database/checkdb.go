package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/felixarntz/screen-reader-check/internal/model"
)

// CheckDB provides SQLite-based storage for checks, domains, options and
// rule results.
//
// Design decision: A single database file holds all checks rather than one
// file per check. Domain option sharing across checks of the same hostname
// requires them to live in the same store, and a single file simplifies
// backup and inspection.
type CheckDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CheckDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CheckDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CheckDB, error) {
	dbPath := filepath.Join(dbDir, "srcheck.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CheckDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CheckDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CheckDB) createTables() error {
	schema := `
	-- Checks store the audited HTML snapshot plus metadata
	CREATE TABLE IF NOT EXISTS checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL DEFAULT '',
		html TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Domains are shared option stores keyed by hostname
	CREATE TABLE IF NOT EXISTS domains (
		host TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Flat key/value options private to a check (raw-HTML checks)
	CREATE TABLE IF NOT EXISTS check_options (
		check_id INTEGER NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (check_id, key)
	);

	-- Flat key/value options shared by all checks of a hostname
	CREATE TABLE IF NOT EXISTS domain_options (
		host TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (host, key)
	);

	-- Completed rule results, one row per check and rule. seq preserves
	-- the order results were first produced in, so re-runs keep their
	-- original position.
	CREATE TABLE IF NOT EXISTS results (
		check_id INTEGER NOT NULL,
		test_slug TEXT NOT NULL,
		seq INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (check_id, test_slug)
	);

	CREATE INDEX IF NOT EXISTS idx_results_check ON results(check_id, seq);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// CreateCheck inserts a new check and returns its ID.
func (cdb *CheckDB) CreateCheck(ctx context.Context, check *model.Check) (int64, error) {
	query := `
	INSERT INTO checks (url, html, title)
	VALUES (?, ?, ?)
	`

	result, err := cdb.db.ExecContext(ctx, query, check.URL, check.HTML, check.Title)
	if err != nil {
		return 0, fmt.Errorf("failed to insert check: %w", err)
	}

	return result.LastInsertId()
}

// GetCheck retrieves a check by ID. It returns nil without error when no
// check with that ID exists.
func (cdb *CheckDB) GetCheck(ctx context.Context, id int64) (*model.Check, error) {
	query := `
	SELECT id, url, html, title, created_at
	FROM checks
	WHERE id = ?
	`

	var check model.Check
	var createdAt string

	err := cdb.db.QueryRowContext(ctx, query, id).Scan(
		&check.ID,
		&check.URL,
		&check.HTML,
		&check.Title,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check: %w", err)
	}

	check.CreatedAt = parseTimestamp(createdAt)
	return &check, nil
}

// DeleteCheck removes a check together with its private options and
// results. Domain options survive deliberately: they are shared across
// checks of the same hostname.
func (cdb *CheckDB) DeleteCheck(ctx context.Context, id int64) error {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, query := range []string{
		"DELETE FROM results WHERE check_id = ?",
		"DELETE FROM check_options WHERE check_id = ?",
		"DELETE FROM checks WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete check: %w", err)
		}
	}

	return tx.Commit()
}

// EnsureDomain returns the domain record for a hostname, creating it if it
// does not exist yet.
func (cdb *CheckDB) EnsureDomain(ctx context.Context, host string) (*model.Domain, error) {
	insert := `INSERT INTO domains (host) VALUES (?) ON CONFLICT(host) DO NOTHING`
	if _, err := cdb.db.ExecContext(ctx, insert, host); err != nil {
		return nil, fmt.Errorf("failed to ensure domain: %w", err)
	}

	var domain model.Domain
	var createdAt string
	query := `SELECT host, created_at FROM domains WHERE host = ?`
	if err := cdb.db.QueryRowContext(ctx, query, host).Scan(&domain.Host, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}

	domain.CreatedAt = parseTimestamp(createdAt)
	return &domain, nil
}

// SetCheckOptions upserts option key/value pairs private to a check.
func (cdb *CheckDB) SetCheckOptions(ctx context.Context, checkID int64, options map[string]string) error {
	return cdb.setOptions(ctx,
		`INSERT INTO check_options (check_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(check_id, key) DO UPDATE SET value = excluded.value`,
		checkID, options)
}

// GetCheckOptions returns all option key/value pairs private to a check.
func (cdb *CheckDB) GetCheckOptions(ctx context.Context, checkID int64) (map[string]string, error) {
	return cdb.getOptions(ctx,
		`SELECT key, value FROM check_options WHERE check_id = ?`, checkID)
}

// SetDomainOptions upserts option key/value pairs shared by a hostname.
func (cdb *CheckDB) SetDomainOptions(ctx context.Context, host string, options map[string]string) error {
	return cdb.setOptions(ctx,
		`INSERT INTO domain_options (host, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(host, key) DO UPDATE SET value = excluded.value`,
		host, options)
}

// GetDomainOptions returns all option key/value pairs shared by a hostname.
func (cdb *CheckDB) GetDomainOptions(ctx context.Context, host string) (map[string]string, error) {
	return cdb.getOptions(ctx,
		`SELECT key, value FROM domain_options WHERE host = ?`, host)
}

// setOptions writes a full option map inside one transaction so a check is
// never observed with half its options written.
func (cdb *CheckDB) setOptions(ctx context.Context, query string, owner interface{}, options map[string]string) error {
	if len(options) == 0 {
		return nil
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for key, value := range options {
		if _, err := tx.ExecContext(ctx, query, owner, key, value); err != nil {
			return fmt.Errorf("failed to set option %q: %w", key, err)
		}
	}

	return tx.Commit()
}

func (cdb *CheckDB) getOptions(ctx context.Context, query string, owner interface{}) (map[string]string, error) {
	rows, err := cdb.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options[key] = value
	}

	return options, rows.Err()
}

// SaveResult upserts the result for its rule slug. A re-run of the same
// rule replaces the stored result in place, keeping the sequence position
// the rule was first completed at.
func (cdb *CheckDB) SaveResult(ctx context.Context, result *model.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	query := `
	INSERT INTO results (check_id, test_slug, seq, result_json)
	VALUES (?, ?, (SELECT COALESCE(MAX(seq) + 1, 0) FROM results WHERE check_id = ?), ?)
	ON CONFLICT(check_id, test_slug) DO UPDATE SET
		result_json = excluded.result_json,
		created_at = CURRENT_TIMESTAMP
	`

	_, err = cdb.db.ExecContext(ctx, query,
		result.CheckID,
		result.TestSlug,
		result.CheckID,
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// Results returns all completed results of a check in the order the rules
// were first completed.
func (cdb *CheckDB) Results(ctx context.Context, checkID int64) ([]*model.Result, error) {
	query := `
	SELECT result_json FROM results
	WHERE check_id = ?
	ORDER BY seq ASC
	`

	rows, err := cdb.db.QueryContext(ctx, query, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*model.Result
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		var result model.Result
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			continue // Skip malformed results
		}
		results = append(results, &result)
	}

	return results, rows.Err()
}

// LastResult returns the most recently completed result of a check, or nil
// when the check has no results yet.
func (cdb *CheckDB) LastResult(ctx context.Context, checkID int64) (*model.Result, error) {
	query := `
	SELECT result_json FROM results
	WHERE check_id = ?
	ORDER BY seq DESC
	LIMIT 1
	`

	var resultJSON string
	err := cdb.db.QueryRowContext(ctx, query, checkID).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last result: %w", err)
	}

	var result model.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}

	return &result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
