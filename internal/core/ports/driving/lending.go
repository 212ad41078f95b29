package driving

import (
	"context"

	"github.com/tanelv/libris/internal/core/domain"
)

// LendingService is the lending engine: the single owner of a book's
// lending-state transitions. Rule rejections come back as result values;
// the error return is reserved for store failures.
type LendingService interface {
	// Borrow loans the book to the member. When the reservation queue is
	// non-empty only the queue head may borrow, and borrowing consumes
	// their reservation.
	Borrow(ctx context.Context, bookID, memberID string) (domain.Result, error)

	// Return ends the member's loan and hands the book to the first
	// eligible queued member, permanently discarding ineligible entries
	// it skips. Only the current holder may return.
	Return(ctx context.Context, bookID, memberID string) (domain.ReturnResult, error)

	// Reserve queues the member for a loaned book. Reserving an
	// available book with an empty queue grants an immediate loan
	// instead.
	Reserve(ctx context.Context, bookID, memberID string) (domain.Result, error)

	// CancelReservation removes the member's queue position.
	CancelReservation(ctx context.Context, bookID, memberID string) (domain.Result, error)

	// ExtendLoan moves the due date of an active loan by the given
	// number of days. Zero days is rejected.
	ExtendLoan(ctx context.Context, bookID string, days int) (domain.Result, error)

	// CanBorrow reports whether the member exists and is under the
	// borrow limit. It is consulted freshly at every hand-off decision.
	CanBorrow(ctx context.Context, memberID string) (bool, error)
}
