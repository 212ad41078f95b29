package services

import (
	"context"
	"strings"
	"time"

	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
	"github.com/tanelv/libris/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService answers read-only queries by scanning the book store.
// Per-member aggregates are derived rather than denormalised; the full
// scan is acceptable here because reports are not on the hot path.
type ReportService struct {
	bookStore   driven.BookStore
	memberStore driven.MemberStore
}

// NewReportService creates a report service.
func NewReportService(bookStore driven.BookStore, memberStore driven.MemberStore) *ReportService {
	return &ReportService{
		bookStore:   bookStore,
		memberStore: memberStore,
	}
}

// SearchBooks returns books matching the filter. Title matching is a
// case-insensitive substring test.
func (s *ReportService) SearchBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	books, err := s.bookStore.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(filter.TitleContains)
	var matched []domain.Book
	for _, book := range books {
		if needle != "" && !strings.Contains(strings.ToLower(book.Title), needle) {
			continue
		}
		if filter.LoanedTo != "" && book.LoanedTo != filter.LoanedTo {
			continue
		}
		if filter.AvailableOnly != nil && book.Available() != *filter.AvailableOnly {
			continue
		}
		matched = append(matched, book)
	}
	return matched, nil
}

// OverdueBooks returns books on loan whose due date is before asOf.
func (s *ReportService) OverdueBooks(ctx context.Context, asOf time.Time) ([]domain.Book, error) {
	books, err := s.bookStore.List(ctx)
	if err != nil {
		return nil, err
	}

	var overdue []domain.Book
	for _, book := range books {
		if book.Overdue(asOf) {
			overdue = append(overdue, book)
		}
	}
	return overdue, nil
}

// MemberSummary lists the member's current loans and reservation
// positions across the whole catalogue.
func (s *ReportService) MemberSummary(ctx context.Context, memberID string) (*domain.MemberSummary, error) {
	exists, err := s.memberStore.Exists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	books, err := s.bookStore.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.MemberSummary{}
	for _, book := range books {
		if book.LoanedTo == memberID {
			summary.Loans = append(summary.Loans, book)
		}
		if pos := book.QueuePosition(memberID); pos >= 0 {
			summary.Reservations = append(summary.Reservations, domain.ReservationPosition{
				BookID:   book.ID,
				Position: pos,
			})
		}
	}
	return summary, nil
}
