package domain

import (
	"slices"
	"time"
)

// Book represents a catalogued title together with its lending state.
// A book is either available (LoanedTo empty) or on loan to exactly one
// member, and carries an ordered queue of members waiting for it.
type Book struct {
	// ID is the unique identifier for the book.
	ID string

	// Title is the human-readable title.
	Title string

	// LoanedTo is the id of the current holder. Empty means available.
	LoanedTo string

	// DueDate is when the current loan is due. Zero unless on loan.
	DueDate time.Time

	// ReservationQueue holds member ids waiting for the book, in strict
	// arrival order. The front entry is next in line. It never contains
	// duplicates and never contains the current holder.
	ReservationQueue []string

	// CreatedAt is when the book was added to the catalogue.
	CreatedAt time.Time

	// UpdatedAt is when the book was last updated.
	UpdatedAt time.Time
}

// Available reports whether the book is not currently on loan.
func (b *Book) Available() bool {
	return b.LoanedTo == ""
}

// IsReservedBy reports whether the member holds a position anywhere in
// the reservation queue.
func (b *Book) IsReservedBy(memberID string) bool {
	return slices.Contains(b.ReservationQueue, memberID)
}

// QueuePosition returns the member's zero-based position in the queue,
// or -1 if the member is not queued.
func (b *Book) QueuePosition(memberID string) int {
	return slices.Index(b.ReservationQueue, memberID)
}

// QueueHead returns the front entry of the reservation queue.
// The boolean is false when the queue is empty.
func (b *Book) QueueHead() (string, bool) {
	if len(b.ReservationQueue) == 0 {
		return "", false
	}
	return b.ReservationQueue[0], true
}

// PopQueueHead removes and returns the front entry of the queue.
// The boolean is false when the queue is empty.
func (b *Book) PopQueueHead() (string, bool) {
	head, ok := b.QueueHead()
	if !ok {
		return "", false
	}
	b.ReservationQueue = b.ReservationQueue[1:]
	return head, true
}

// Enqueue appends the member to the end of the reservation queue.
func (b *Book) Enqueue(memberID string) {
	b.ReservationQueue = append(b.ReservationQueue, memberID)
}

// RemoveFromQueue removes the member's single occurrence from the queue.
// Returns false if the member was not queued.
func (b *Book) RemoveFromQueue(memberID string) bool {
	idx := b.QueuePosition(memberID)
	if idx < 0 {
		return false
	}
	b.ReservationQueue = slices.Delete(b.ReservationQueue, idx, idx+1)
	return true
}

// Overdue reports whether the book is on loan and past due as of the
// given date.
func (b *Book) Overdue(asOf time.Time) bool {
	return b.LoanedTo != "" && !b.DueDate.IsZero() && b.DueDate.Before(asOf)
}

// Clone returns a deep copy of the book. Each book exclusively owns its
// reservation queue, so stores hand out clones rather than aliases.
func (b *Book) Clone() Book {
	clone := *b
	clone.ReservationQueue = slices.Clone(b.ReservationQueue)
	return clone
}
