// Package memory provides in-memory store implementations, used for
// tests and for running Libris without a persistent database.
package memory

import (
	"context"
	"sync"

	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
// Books are stored and handed out as clones so each caller owns its
// reservation queue; no aliasing escapes the store.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make(map[string]domain.Book),
	}
}

// Save stores or updates a book.
func (s *BookStore) Save(_ context.Context, book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.ID] = book.Clone()
	return nil
}

// Get retrieves a book by ID.
func (s *BookStore) Get(_ context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := book.Clone()
	return &clone, nil
}

// Delete removes a book.
func (s *BookStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	return nil
}

// List returns all catalogued books.
func (s *BookStore) List(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		result = append(result, book.Clone())
	}
	return result, nil
}

// Exists reports whether a book with the given ID exists.
func (s *BookStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.books[id]
	return ok, nil
}

// CountLoanedTo returns the number of books currently loaned to the member.
func (s *BookStore) CountLoanedTo(_ context.Context, memberID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, book := range s.books {
		if book.LoanedTo == memberID {
			count++
		}
	}
	return count, nil
}
