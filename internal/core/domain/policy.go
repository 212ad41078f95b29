package domain

import "time"

// Policy defaults. Actual values are loaded from configuration.
const (
	// DefaultMaxLoans is the borrow limit per member.
	DefaultMaxLoans = 5

	// DefaultLoanDays is the loan period in days.
	DefaultLoanDays = 14
)

// LendingPolicy carries the tunable lending rules. It is injected into
// the lending engine rather than hardcoded, so limits can be changed
// through configuration.
type LendingPolicy struct {
	// MaxLoans is the maximum number of simultaneous loans per member.
	MaxLoans int

	// LoanDays is the loan period in days.
	LoanDays int
}

// DefaultLendingPolicy returns the built-in policy values.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		MaxLoans: DefaultMaxLoans,
		LoanDays: DefaultLoanDays,
	}
}

// DueDate computes the due date for a loan granted at the given time.
func (p LendingPolicy) DueDate(grantedAt time.Time) time.Time {
	return grantedAt.AddDate(0, 0, p.LoanDays)
}

// IsValid returns true if the policy values are usable.
func (p LendingPolicy) IsValid() bool {
	return p.MaxLoans > 0 && p.LoanDays > 0
}
