package services

import (
	"context"
	"errors"

	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
	"github.com/tanelv/libris/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService maintains book and member records. It is plain
// plumbing with no state-machine coupling: renames never touch lending
// state, and member deletion never scrubs queues or loans.
type CatalogService struct {
	bookStore   driven.BookStore
	memberStore driven.MemberStore
}

// NewCatalogService creates a catalog service.
func NewCatalogService(bookStore driven.BookStore, memberStore driven.MemberStore) *CatalogService {
	return &CatalogService{
		bookStore:   bookStore,
		memberStore: memberStore,
	}
}

// CreateBook adds a book with an empty lending state. Creating an
// existing id overwrites the record.
func (s *CatalogService) CreateBook(ctx context.Context, id, title string) (domain.Result, error) {
	if id == "" || title == "" {
		return domain.Failure(domain.ReasonInvalidRequest), nil
	}
	book := domain.Book{ID: id, Title: title}
	if err := s.bookStore.Save(ctx, book); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// RenameBook updates a book's title, leaving lending state untouched.
func (s *CatalogService) RenameBook(ctx context.Context, id, title string) (domain.Result, error) {
	book, err := s.bookStore.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}
	if title == "" {
		return domain.Failure(domain.ReasonInvalidRequest), nil
	}
	book.Title = title
	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// DeleteBook removes a book record.
func (s *CatalogService) DeleteBook(ctx context.Context, id string) (domain.Result, error) {
	exists, err := s.bookStore.Exists(ctx, id)
	if err != nil {
		return domain.Result{}, err
	}
	if !exists {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err := s.bookStore.Delete(ctx, id); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// GetBook retrieves a book by ID.
func (s *CatalogService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.bookStore.Get(ctx, id)
}

// ListBooks returns all catalogued books.
func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookStore.List(ctx)
}

// CreateMember registers a member.
func (s *CatalogService) CreateMember(ctx context.Context, id, name string) (domain.Result, error) {
	if id == "" || name == "" {
		return domain.Failure(domain.ReasonInvalidRequest), nil
	}
	member := domain.Member{ID: id, Name: name}
	if err := s.memberStore.Save(ctx, member); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// RenameMember updates a member's name.
func (s *CatalogService) RenameMember(ctx context.Context, id, name string) (domain.Result, error) {
	member, err := s.memberStore.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonMemberNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}
	if name == "" {
		return domain.Failure(domain.ReasonInvalidRequest), nil
	}
	member.Name = name
	if err := s.memberStore.Save(ctx, *member); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// DeleteMember removes the member record only. Lending state keeps any
// references to the id; the lending engine treats the missing member as
// ineligible wherever it encounters them.
func (s *CatalogService) DeleteMember(ctx context.Context, id string) (domain.Result, error) {
	exists, err := s.memberStore.Exists(ctx, id)
	if err != nil {
		return domain.Result{}, err
	}
	if !exists {
		return domain.Failure(domain.ReasonMemberNotFound), nil
	}
	if err := s.memberStore.Delete(ctx, id); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// ListMembers returns all registered members.
func (s *CatalogService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberStore.List(ctx)
}
