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

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tanelv/libris/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
)

// Store is a SQLite-backed storage that provides access to the book and
// member store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.libris/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".libris", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

// BookStore returns a BookStore interface backed by this store.
func (s *Store) BookStore() driven.BookStore {
	return &bookStore{store: s}
}

// MemberStore returns a MemberStore interface backed by this store.
func (s *Store) MemberStore() driven.MemberStore {
	return &memberStore{store: s}
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

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Book Store ====================

// bookStore implements driven.BookStore.
type bookStore struct {
	store *Store
}

var _ driven.BookStore = (*bookStore)(nil)

// Save stores or updates a book, including its reservation queue.
func (s *bookStore) Save(ctx context.Context, book domain.Book) error {
	queueJSON, err := json.Marshal(book.ReservationQueue)
	if err != nil {
		return fmt.Errorf("marshalling reservation queue: %w", err)
	}

	now := time.Now().UTC()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO books (id, title, loaned_to, due_date, reservation_queue, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			loaned_to = excluded.loaned_to,
			due_date = excluded.due_date,
			reservation_queue = excluded.reservation_queue,
			updated_at = excluded.updated_at
	`, book.ID, book.Title, nullString(book.LoanedTo), nullTime(book.DueDate),
		string(queueJSON), book.CreatedAt, book.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving book: %w", err)
	}
	return nil
}

// Get retrieves a book by ID.
func (s *bookStore) Get(ctx context.Context, id string) (*domain.Book, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, loaned_to, due_date, reservation_queue, created_at, updated_at
		FROM books WHERE id = ?
	`, id)

	book, err := scanBook(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

// Delete removes a book.
func (s *bookStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

// List returns all catalogued books.
func (s *bookStore) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, loaned_to, due_date, reservation_queue, created_at, updated_at
		FROM books
	`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book //nolint:prealloc // size unknown from query
	for rows.Next() {
		book, err := scanBook(rows.Scan)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// Exists reports whether a book with the given ID exists.
func (s *bookStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	row := s.store.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)", id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("checking book existence: %w", err)
	}
	return exists, nil
}

// CountLoanedTo returns the number of books currently loaned to the member.
func (s *bookStore) CountLoanedTo(ctx context.Context, memberID string) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books WHERE loaned_to = ?", memberID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting loans: %w", err)
	}
	return count, nil
}

// scanBook reads one book row via the given scan function.
func scanBook(scan func(dest ...any) error) (*domain.Book, error) {
	var book domain.Book
	var queueJSON string
	var loanedTo sql.NullString
	var dueDate, createdAt, updatedAt sql.NullTime
	if err := scan(&book.ID, &book.Title, &loanedTo, &dueDate, &queueJSON,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}

	if err := json.Unmarshal([]byte(queueJSON), &book.ReservationQueue); err != nil {
		return nil, fmt.Errorf("unmarshaling reservation queue: %w", err)
	}

	book.LoanedTo = loanedTo.String
	if dueDate.Valid {
		book.DueDate = dueDate.Time
	}
	if createdAt.Valid {
		book.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		book.UpdatedAt = updatedAt.Time
	}
	return &book, nil
}

// ==================== Member Store ====================

// memberStore implements driven.MemberStore.
type memberStore struct {
	store *Store
}

var _ driven.MemberStore = (*memberStore)(nil)

// Save stores or updates a member.
func (s *memberStore) Save(ctx context.Context, member domain.Member) error {
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO members (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`, member.ID, member.Name, member.CreatedAt, member.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving member: %w", err)
	}
	return nil
}

// Get retrieves a member by ID.
func (s *memberStore) Get(ctx context.Context, id string) (*domain.Member, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM members WHERE id = ?
	`, id)

	var member domain.Member
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&member.ID, &member.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}

	if createdAt.Valid {
		member.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		member.UpdatedAt = updatedAt.Time
	}
	return &member, nil
}

// Delete removes a member. Lending state referencing the member is left
// untouched on purpose.
func (s *memberStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

// List returns all registered members.
func (s *memberStore) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM members
	`)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member //nolint:prealloc // size unknown from query
	for rows.Next() {
		var member domain.Member
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&member.ID, &member.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		if createdAt.Valid {
			member.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			member.UpdatedAt = updatedAt.Time
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	return members, nil
}

// Exists reports whether a member with the given ID exists.
func (s *memberStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	row := s.store.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM members WHERE id = ?)", id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("checking member existence: %w", err)
	}
	return exists, nil
}

// nullString converts empty strings to NULL for storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullTime converts zero times to NULL for storage.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
