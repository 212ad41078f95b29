package driving

import (
	"context"

	"github.com/tanelv/libris/internal/core/domain"
)

// CatalogService maintains plain book and member records. It never
// touches lending state beyond what record deletion implies.
type CatalogService interface {
	// CreateBook adds a book with an empty lending state.
	CreateBook(ctx context.Context, id, title string) (domain.Result, error)

	// RenameBook updates a book's title only.
	RenameBook(ctx context.Context, id, title string) (domain.Result, error)

	// DeleteBook removes a book record.
	DeleteBook(ctx context.Context, id string) (domain.Result, error)

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, id string) (*domain.Book, error)

	// ListBooks returns all catalogued books.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// CreateMember registers a member.
	CreateMember(ctx context.Context, id, name string) (domain.Result, error)

	// RenameMember updates a member's name only.
	RenameMember(ctx context.Context, id, name string) (domain.Result, error)

	// DeleteMember removes a member record. Books loaned to or reserved
	// by the member keep their references; the lending engine treats the
	// missing member as ineligible from then on.
	DeleteMember(ctx context.Context, id string) (domain.Result, error)

	// ListMembers returns all registered members.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}
