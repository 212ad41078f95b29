package domain

// Reason is a machine-readable code explaining why a lending operation
// was rejected. Rule rejections are normal return values, never Go
// errors; errors are reserved for infrastructure faults.
type Reason string

// Rejection reasons.
const (
	// ReasonBookNotFound indicates the referenced book does not exist.
	ReasonBookNotFound Reason = "BOOK_NOT_FOUND"

	// ReasonMemberNotFound indicates the referenced member does not exist.
	ReasonMemberNotFound Reason = "MEMBER_NOT_FOUND"

	// ReasonAlreadyLoaned indicates the book is already on loan.
	ReasonAlreadyLoaned Reason = "ALREADY_LOANED"

	// ReasonReservationQueue indicates a member other than the queue head
	// tried to borrow a book with a non-empty reservation queue.
	ReasonReservationQueue Reason = "RESERVATION_QUEUE"

	// ReasonBorrowLimit indicates the member is at the borrow limit.
	ReasonBorrowLimit Reason = "BORROW_LIMIT"

	// ReasonAlreadyReserved indicates the member already holds a queue
	// position for the book.
	ReasonAlreadyReserved Reason = "ALREADY_RESERVED"

	// ReasonNotReserved indicates the member holds no queue position.
	ReasonNotReserved Reason = "NOT_RESERVED"

	// ReasonInvalidRequest indicates malformed catalogue input.
	ReasonInvalidRequest Reason = "INVALID_REQUEST"

	// ReasonInvalidExtension indicates a zero-day loan extension.
	ReasonInvalidExtension Reason = "INVALID_EXTENSION"

	// ReasonNotLoaned indicates the book is not currently on loan.
	ReasonNotLoaned Reason = "NOT_LOANED"
)

// String returns the string representation.
func (r Reason) String() string {
	return string(r)
}

// Result is the tagged outcome of a lending or catalogue operation.
type Result struct {
	// OK is true when the operation succeeded.
	OK bool

	// Reason carries the rejection code when OK is false.
	Reason Reason
}

// Success returns a successful result.
func Success() Result {
	return Result{OK: true}
}

// Failure returns a rejected result with the given reason.
func Failure(reason Reason) Result {
	return Result{OK: false, Reason: reason}
}

// ReturnResult is the outcome of a return operation. Return rejections
// intentionally carry no reason, only the ok flag.
type ReturnResult struct {
	// OK is true when the return succeeded.
	OK bool

	// NextMemberID is the member who received the hand-off, or empty
	// when the book ended up available.
	NextMemberID string
}

// ReturnSuccess returns a successful return result with the hand-off
// recipient, or empty when the book became available.
func ReturnSuccess(nextMemberID string) ReturnResult {
	return ReturnResult{OK: true, NextMemberID: nextMemberID}
}

// ReturnFailure returns a rejected return result.
func ReturnFailure() ReturnResult {
	return ReturnResult{OK: false}
}
