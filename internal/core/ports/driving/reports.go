package driving

import (
	"context"
	"time"

	"github.com/tanelv/libris/internal/core/domain"
)

// ReportService answers read-only queries over the catalogue.
type ReportService interface {
	// SearchBooks returns books matching the filter.
	SearchBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)

	// OverdueBooks returns books on loan whose due date is before the
	// given date.
	OverdueBooks(ctx context.Context, asOf time.Time) ([]domain.Book, error)

	// MemberSummary lists the member's current loans and queue
	// positions. Returns domain.ErrNotFound for unknown members.
	MemberSummary(ctx context.Context, memberID string) (*domain.MemberSummary, error)
}
