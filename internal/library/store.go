package library

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stagehand/internal/console"
	"stagehand/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must delete the database after a bump.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates the database was created by a different
	// stagehand version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrNotFound indicates no session matches the requested ID.
	ErrNotFound = errors.New("session not found")
	// ErrLocked indicates another stagehand process holds the library lock.
	ErrLocked = errors.New("library is locked by another process")
)

// Store manages session persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the library database at dbPath.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "library", "open", "database path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure library directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the library lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Save stores a session in the library. A record with an empty ID gets a
// fresh one; an existing ID is updated in place. The assigned ID is
// returned.
func (s *Store) Save(ctx context.Context, session *console.ConsoleSession, id string) (string, error) {
	if session == nil {
		return "", services.Wrap(services.ErrValidation, "library", "save", "session is nil", nil)
	}
	document, err := console.Encode(session)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	gigDate := ""
	if !session.Gig.Date.IsZero() {
		gigDate = session.Gig.Date.UTC().Format(time.RFC3339)
	}

	err = s.execWithRetry(ctx, `
		INSERT INTO sessions (id, gig_name, venue, gig_date, manufacturer, model, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			gig_name = excluded.gig_name,
			venue = excluded.venue,
			gig_date = excluded.gig_date,
			manufacturer = excluded.manufacturer,
			model = excluded.model,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		id, session.Gig.Name, nullableString(session.Gig.Venue), nullableString(gigDate),
		session.Console.Manufacturer, session.Console.Model, string(document), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Get loads one session record by ID.
func (s *Store) Get(ctx context.Context, id string) (*SessionRecord, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, gig_name, venue, gig_date, manufacturer, model, document, created_at, updated_at
		FROM sessions WHERE id = ?`, id)

	record, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return record, nil
}

// Session decodes the stored document of a record back into a session.
func (s *Store) Session(ctx context.Context, id string) (*console.ConsoleSession, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session, err := console.Decode([]byte(record.Document))
	if err != nil {
		return nil, fmt.Errorf("decode stored session %s: %w", id, err)
	}
	return session, nil
}

// List returns all stored sessions, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*SessionRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, gig_name, venue, gig_date, manufacturer, model, document, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []*SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

// Delete removes a session and its export history.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.execResultWithRetry(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// RecordExport appends an export run to the history of a stored session.
func (s *Store) RecordExport(ctx context.Context, record ExportRecord) error {
	if strings.TrimSpace(record.SessionID) == "" {
		return services.Wrap(services.ErrValidation, "library", "record export", "session id is empty", nil)
	}
	exportedAt := record.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}
	err := s.execWithRetry(ctx, `
		INSERT INTO exports (session_id, manufacturer, model, output_dir, file_count, warning_count, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.SessionID, record.Manufacturer, record.Model, record.OutputDir,
		record.FileCount, record.WarningCount, exportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ExportHistory returns the export runs for a session, newest first.
func (s *Store) ExportHistory(ctx context.Context, sessionID string) ([]ExportRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, manufacturer, model, output_dir, file_count, warning_count, exported_at
		FROM exports WHERE session_id = ? ORDER BY exported_at DESC, id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var (
			record      ExportRecord
			exportedRaw string
		)
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Manufacturer, &record.Model,
			&record.OutputDir, &record.FileCount, &record.WarningCount, &exportedRaw); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		if parsed, err := parseTimeString(exportedRaw); err == nil {
			record.ExportedAt = parsed
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return records, nil
}

func scanSession(scanner interface{ Scan(dest ...any) error }) (*SessionRecord, error) {
	var (
		record     SessionRecord
		venue      sql.NullString
		gigDate    sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&record.ID, &record.GigName, &venue, &gigDate,
		&record.Manufacturer, &record.Model, &record.Document, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	record.Venue = venue.String
	record.GigDate = gigDate.String
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return &record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func (s *Store) execResultWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}
