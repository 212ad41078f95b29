package domain

import "time"

// Member represents a registered library member.
// Members hold no stored loan list; loan and reservation membership is
// derived by querying the book store.
type Member struct {
	// ID is the unique identifier for the member.
	ID string

	// Name is the member's display name.
	Name string

	// CreatedAt is when the member was registered.
	CreatedAt time.Time

	// UpdatedAt is when the member was last updated.
	UpdatedAt time.Time
}

// ReservationPosition records a member's place in one book's queue.
type ReservationPosition struct {
	// BookID identifies the reserved book.
	BookID string

	// Position is the zero-based place in that book's queue.
	Position int
}

// MemberSummary lists a member's current loans and queue positions,
// derived by scanning the whole catalogue.
type MemberSummary struct {
	// Loans are the books currently loaned to the member.
	Loans []Book

	// Reservations are the member's positions in reservation queues.
	Reservations []ReservationPosition
}
