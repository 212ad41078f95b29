package driven

import (
	"context"

	"github.com/tanelv/libris/internal/core/domain"
)

// BookStore persists books and their lending state.
type BookStore interface {
	// Save stores or updates a book, including its reservation queue.
	Save(ctx context.Context, book domain.Book) error

	// Get retrieves a book by ID. Returns domain.ErrNotFound when the
	// book does not exist.
	Get(ctx context.Context, id string) (*domain.Book, error)

	// Delete removes a book.
	Delete(ctx context.Context, id string) error

	// List returns all catalogued books.
	List(ctx context.Context) ([]domain.Book, error)

	// Exists reports whether a book with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)

	// CountLoanedTo returns the number of books currently loaned to the
	// member. This backs the hot-path eligibility check, avoiding a full
	// catalogue scan.
	CountLoanedTo(ctx context.Context, memberID string) (int, error)
}
