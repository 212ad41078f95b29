package domain

// BookFilter narrows a catalogue search. Zero-value fields match
// everything.
type BookFilter struct {
	// TitleContains matches books whose title contains the substring,
	// case-insensitively. Empty matches all titles.
	TitleContains string

	// AvailableOnly, when set, restricts to available (true) or
	// on-loan (false) books.
	AvailableOnly *bool

	// LoanedTo restricts to books held by the given member.
	// Empty matches any holder.
	LoanedTo string
}
