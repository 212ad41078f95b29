package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
	"github.com/tanelv/libris/internal/core/ports/driving"
	"github.com/tanelv/libris/internal/logger"
)

// Ensure LendingService implements the interface.
var _ driving.LendingService = (*LendingService)(nil)

// LendingService is the lending engine. It is stateless between calls;
// all state lives in the book and member stores. Operations on the same
// book are serialised through a per-book lock so every decision sees a
// consistent snapshot; operations on different books run in parallel.
type LendingService struct {
	bookStore   driven.BookStore
	memberStore driven.MemberStore
	policy      domain.LendingPolicy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLendingService creates a lending engine with the given policy.
// An invalid policy falls back to the defaults.
func NewLendingService(
	bookStore driven.BookStore,
	memberStore driven.MemberStore,
	policy domain.LendingPolicy,
) *LendingService {
	if !policy.IsValid() {
		policy = domain.DefaultLendingPolicy()
	}
	return &LendingService{
		bookStore:   bookStore,
		memberStore: memberStore,
		policy:      policy,
		locks:       make(map[string]*sync.Mutex),
	}
}

// Policy returns the lending policy in effect.
func (s *LendingService) Policy() domain.LendingPolicy {
	return s.policy
}

// lockBook serialises operations per book id and returns the unlock.
func (s *LendingService) lockBook(bookID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[bookID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[bookID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Borrow loans the book to the member.
//
// Preconditions are checked in order, first failure wins: book exists,
// member exists, book available, requester is queue head (when a queue
// exists), member under the borrow limit. A queue head borrowing
// consumes their reservation.
func (s *LendingService) Borrow(ctx context.Context, bookID, memberID string) (domain.Result, error) {
	unlock := s.lockBook(bookID)
	defer unlock()

	book, err := s.bookStore.Get(ctx, bookID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}

	exists, err := s.memberStore.Exists(ctx, memberID)
	if err != nil {
		return domain.Result{}, err
	}
	if !exists {
		return domain.Failure(domain.ReasonMemberNotFound), nil
	}

	if !book.Available() {
		return domain.Failure(domain.ReasonAlreadyLoaned), nil
	}

	// Respect the reservation queue: only the head may borrow, and
	// borrowing consumes their reservation.
	popped := false
	if head, ok := book.QueueHead(); ok {
		if head != memberID {
			return domain.Failure(domain.ReasonReservationQueue), nil
		}
		book.PopQueueHead()
		popped = true
	}

	eligible, err := s.eligible(ctx, memberID)
	if err != nil {
		return domain.Result{}, err
	}
	if !eligible {
		// The consumed reservation is intentionally not restored; this
		// matches long-standing behaviour callers rely on.
		if popped {
			logger.Warn("borrow: member %s lost queue position on book %s after failing the borrow limit", memberID, bookID)
			if err := s.bookStore.Save(ctx, *book); err != nil {
				return domain.Result{}, err
			}
		}
		return domain.Failure(domain.ReasonBorrowLimit), nil
	}

	s.grant(book, memberID)
	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.Result{}, err
	}
	logger.Debug("borrow: book %s loaned to %s until %s", bookID, memberID, book.DueDate.Format(time.DateOnly))
	return domain.Success(), nil
}

// Return ends the holder's loan and attempts a hand-off to the queue.
//
// Only the exact current holder may return; any other requester fails
// and leaves the loan untouched. The hand-off loop pops queue heads,
// permanently discarding ineligible entries, and grants the book to the
// first eligible candidate; remaining entries stay queued.
func (s *LendingService) Return(ctx context.Context, bookID, memberID string) (domain.ReturnResult, error) {
	unlock := s.lockBook(bookID)
	defer unlock()

	book, err := s.bookStore.Get(ctx, bookID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ReturnFailure(), nil
	}
	if err != nil {
		return domain.ReturnResult{}, err
	}

	if book.Available() || book.LoanedTo != memberID {
		return domain.ReturnFailure(), nil
	}

	book.LoanedTo = ""
	book.DueDate = time.Time{}

	next := ""
	for {
		candidate, ok := book.PopQueueHead()
		if !ok {
			break
		}

		eligible, err := s.eligible(ctx, candidate)
		if err != nil {
			return domain.ReturnResult{}, err
		}
		if !eligible {
			logger.Debug("return: skipping ineligible reserver %s for book %s", candidate, bookID)
			continue
		}

		s.grant(book, candidate)
		next = candidate
		break
	}

	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.ReturnResult{}, err
	}
	return domain.ReturnSuccess(next), nil
}

// Reserve queues the member for the book, or fast-paths an available
// book with an empty queue into an immediate loan.
func (s *LendingService) Reserve(ctx context.Context, bookID, memberID string) (domain.Result, error) {
	unlock := s.lockBook(bookID)
	defer unlock()

	book, err := s.bookStore.Get(ctx, bookID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}

	exists, err := s.memberStore.Exists(ctx, memberID)
	if err != nil {
		return domain.Result{}, err
	}
	if !exists {
		return domain.Failure(domain.ReasonMemberNotFound), nil
	}

	// A member may not hold two queue positions for the same book.
	if book.IsReservedBy(memberID) {
		return domain.Failure(domain.ReasonAlreadyReserved), nil
	}

	// Available book with a non-empty queue: normally borrow/return
	// hand-off keeps these in sync, so this state signals upstream
	// inconsistency. Append rather than line-jump, preserving FIFO
	// fairness for whoever is already waiting.
	if book.Available() && len(book.ReservationQueue) > 0 {
		logger.Warn("reserve: book %s is available but has %d queued reservations", bookID, len(book.ReservationQueue))
		book.Enqueue(memberID)
		if err := s.bookStore.Save(ctx, *book); err != nil {
			return domain.Result{}, err
		}
		return domain.Success(), nil
	}

	// Reserving an available book grants an immediate loan, gated by
	// eligibility. The member is never enqueued on this path.
	if book.Available() {
		eligible, err := s.eligible(ctx, memberID)
		if err != nil {
			return domain.Result{}, err
		}
		if !eligible {
			return domain.Failure(domain.ReasonBorrowLimit), nil
		}
		s.grant(book, memberID)
		if err := s.bookStore.Save(ctx, *book); err != nil {
			return domain.Result{}, err
		}
		logger.Debug("reserve: available book %s loaned immediately to %s", bookID, memberID)
		return domain.Success(), nil
	}

	book.Enqueue(memberID)
	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// CancelReservation removes the member's queue position. Loan state is
// never affected.
func (s *LendingService) CancelReservation(ctx context.Context, bookID, memberID string) (domain.Result, error) {
	unlock := s.lockBook(bookID)
	defer unlock()

	book, err := s.bookStore.Get(ctx, bookID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}

	exists, err := s.memberStore.Exists(ctx, memberID)
	if err != nil {
		return domain.Result{}, err
	}
	if !exists {
		return domain.Failure(domain.ReasonMemberNotFound), nil
	}

	if !book.RemoveFromQueue(memberID) {
		return domain.Failure(domain.ReasonNotReserved), nil
	}

	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// ExtendLoan moves the due date of an active loan by the given number
// of days. A missing due date extends from today's date plus the loan
// period.
func (s *LendingService) ExtendLoan(ctx context.Context, bookID string, days int) (domain.Result, error) {
	if days == 0 {
		return domain.Failure(domain.ReasonInvalidExtension), nil
	}

	unlock := s.lockBook(bookID)
	defer unlock()

	book, err := s.bookStore.Get(ctx, bookID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failure(domain.ReasonBookNotFound), nil
	}
	if err != nil {
		return domain.Result{}, err
	}

	if book.Available() {
		return domain.Failure(domain.ReasonNotLoaned), nil
	}

	base := book.DueDate
	if base.IsZero() {
		base = s.policy.DueDate(time.Now().UTC())
	}
	book.DueDate = base.AddDate(0, 0, days)

	if err := s.bookStore.Save(ctx, *book); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(), nil
}

// CanBorrow reports whether the member exists and holds fewer loans
// than the policy limit.
func (s *LendingService) CanBorrow(ctx context.Context, memberID string) (bool, error) {
	return s.eligible(ctx, memberID)
}

// eligible is the single source of truth for "may this member receive
// a loan". It is queried freshly at every decision point; limits change
// as loans complete, so the answer is never cached.
func (s *LendingService) eligible(ctx context.Context, memberID string) (bool, error) {
	exists, err := s.memberStore.Exists(ctx, memberID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	count, err := s.bookStore.CountLoanedTo(ctx, memberID)
	if err != nil {
		return false, err
	}
	return count < s.policy.MaxLoans, nil
}

// grant assigns the loan with a fresh due date.
func (s *LendingService) grant(book *domain.Book, memberID string) {
	book.LoanedTo = memberID
	book.DueDate = s.policy.DueDate(time.Now().UTC())
}
