package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/inkmark/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the highlight
// store interface through a wrapper type.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.inkmark/data/highlights.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkmark", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "highlights.db")

	// WAL mode lets readers proceed while a merge is being written.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// HighlightStore returns a HighlightStore interface backed by this store.
func (s *Store) HighlightStore() driven.HighlightStore {
	return &highlightStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_highlights.up.sql" -> 1
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

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Highlight Store ====================

// highlightStore implements driven.HighlightStore.
type highlightStore struct {
	store *Store
}

var _ driven.HighlightStore = (*highlightStore)(nil)

// Load returns every highlight owned by a document, oldest first.
func (s *highlightStore) Load(ctx context.Context, ownerID string) ([]domain.Highlight, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, page, content, color, note, rects, zoom, created_at
		FROM highlights WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying highlights: %w", err)
	}
	defer rows.Close()

	highlights := make([]domain.Highlight, 0)
	for rows.Next() {
		h, err := scanHighlight(rows)
		if err != nil {
			return nil, err
		}
		highlights = append(highlights, *h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating highlights: %w", err)
	}

	return highlights, nil
}

// Upsert creates or replaces a highlight by ID.
func (s *highlightStore) Upsert(ctx context.Context, h *domain.Highlight) error {
	if h == nil || h.ID == "" {
		return domain.ErrInvalidInput
	}

	rectsJSON, err := json.Marshal(h.ContextRange.Rects)
	if err != nil {
		return fmt.Errorf("marshalling rects: %w", err)
	}

	var note sql.NullString
	if h.Note != nil {
		note = sql.NullString{String: *h.Note, Valid: true}
	}
	var zoom sql.NullFloat64
	if h.ContextRange.Zoom != nil {
		zoom = sql.NullFloat64{Float64: *h.ContextRange.Zoom, Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO highlights (id, owner_id, page, content, color, note, rects, zoom, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			page = excluded.page,
			content = excluded.content,
			color = excluded.color,
			note = excluded.note,
			rects = excluded.rects,
			zoom = excluded.zoom,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, h.ID, h.OwnerID, h.ContextRange.Page, h.Content, string(h.Color), note,
		string(rectsJSON), zoom, h.CreatedAt.UnixNano(), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving highlight: %w", err)
	}
	return nil
}

// Delete removes a highlight by ID.
func (s *highlightStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM highlights WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting highlight: %w", err)
	}
	return nil
}

// scanHighlight scans one highlight row.
func scanHighlight(rows *sql.Rows) (*domain.Highlight, error) {
	var (
		h         domain.Highlight
		color     string
		note      sql.NullString
		rectsJSON string
		zoom      sql.NullFloat64
		createdAt int64
	)
	err := rows.Scan(&h.ID, &h.OwnerID, &h.ContextRange.Page, &h.Content, &color,
		&note, &rectsJSON, &zoom, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scanning highlight: %w", err)
	}

	h.Color = domain.HighlightColor(color)
	if note.Valid {
		n := note.String
		h.Note = &n
	}
	if zoom.Valid {
		z := zoom.Float64
		h.ContextRange.Zoom = &z
	}
	if err := json.Unmarshal([]byte(rectsJSON), &h.ContextRange.Rects); err != nil {
		return nil, fmt.Errorf("unmarshalling rects for %s: %w", h.ID, err)
	}
	h.CreatedAt = time.Unix(0, createdAt)

	return &h, nil
}
