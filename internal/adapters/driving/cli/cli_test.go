package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanelv/libris/internal/adapters/driven/storage/memory"
	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/services"
)

// setupTestServices wires the commands to memory-backed services and
// resets flag state so tests do not leak into each other.
func setupTestServices(t *testing.T) (*memory.BookStore, *memory.MemberStore) {
	t.Helper()

	books := memory.NewBookStore()
	members := memory.NewMemberStore()
	SetServices(
		services.NewLendingService(books, members, domain.DefaultLendingPolicy()),
		services.NewCatalogService(books, members),
		services.NewReportService(books, members),
	)
	t.Cleanup(func() { SetServices(nil, nil, nil) })

	bookID = ""
	memberID = ""
	extendDays = 7
	searchTitle = ""
	searchAvailable = false
	searchLoaned = false
	searchHolder = ""
	overdueAsOf = ""

	return books, members
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return parsed
}

func seedBook(t *testing.T, books *memory.BookStore, book domain.Book) {
	t.Helper()
	require.NoError(t, books.Save(context.Background(), book))
}

func seedMember(t *testing.T, members *memory.MemberStore, member domain.Member) {
	t.Helper()
	require.NoError(t, members.Save(context.Background(), member))
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "libris", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestVersionCommand(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "libris version")
}

func TestBorrowCommand(t *testing.T) {
	books, members := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})

	out, err := executeCommand(t, "borrow", "b1", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Book b1 loaned to m1.")

	book, err := books.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "m1", book.LoanedTo)
}

func TestBorrowCommand_PrintsRejectionReason(t *testing.T) {
	books, _ := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})

	out, err := executeCommand(t, "borrow", "b1", "ghost")
	require.NoError(t, err, "rule rejections are not command errors")
	assert.Contains(t, out, "Borrow rejected: MEMBER_NOT_FOUND")
}

func TestBorrowCommand_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "borrow", "b1")
	assert.Error(t, err)
}

func TestReturnCommand_HandsOff(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedMember(t, members, domain.Member{ID: "m2", Name: "Rasmus"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1", ReservationQueue: []string{"m2"}})

	out, err := executeCommand(t, "return", "b1", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Book b1 returned and handed off to m2.")
}

func TestReturnCommand_BookBecomesAvailable(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1"})

	out, err := executeCommand(t, "return", "b1", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Book b1 returned and is now available.")
}

func TestReturnCommand_Rejection(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})

	out, err := executeCommand(t, "return", "b1", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Return rejected.")
}

func TestReserveCommand(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedMember(t, members, domain.Member{ID: "m2", Name: "Rasmus"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1"})

	out, err := executeCommand(t, "reserve", "b1", "m2")
	require.NoError(t, err)
	assert.Contains(t, out, "Reservation accepted for m2 on book b1.")
}

func TestReserveCommand_Rejection(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedMember(t, members, domain.Member{ID: "m2", Name: "Rasmus"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1", ReservationQueue: []string{"m2"}})

	out, err := executeCommand(t, "reserve", "b1", "m2")
	require.NoError(t, err)
	assert.Contains(t, out, "Reserve rejected: ALREADY_RESERVED")
}

func TestCancelCommand(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedMember(t, members, domain.Member{ID: "m2", Name: "Rasmus"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1", ReservationQueue: []string{"m2"}})

	out, err := executeCommand(t, "cancel", "b1", "m2")
	require.NoError(t, err)
	assert.Contains(t, out, "Reservation cancelled for m2 on book b1.")
}

func TestCancelCommand_NotReserved(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})

	out, err := executeCommand(t, "cancel", "b1", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancel rejected: NOT_RESERVED")
}

func TestExtendCommand(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1"})

	out, err := executeCommand(t, "extend", "b1", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Loan on book b1 extended by 3 days.")
}

func TestExtendCommand_NotLoaned(t *testing.T) {
	books, _ := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})

	out, err := executeCommand(t, "extend", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Extend rejected: NOT_LOANED")
}

func TestBookAddCommand_WithExplicitID(t *testing.T) {
	books, _ := setupTestServices(t)

	out, err := executeCommand(t, "book", "add", "Kevade", "--id", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added book b1: Kevade")

	exists, err := books.Exists(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBookAddCommand_GeneratesID(t *testing.T) {
	books, _ := setupTestServices(t)

	out, err := executeCommand(t, "book", "add", "Kevade")
	require.NoError(t, err)
	assert.Contains(t, out, "Added book")

	all, err := books.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotEmpty(t, all[0].ID)
}

func TestBookRenameCommand(t *testing.T) {
	books, _ := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Old"})

	out, err := executeCommand(t, "book", "rename", "b1", "New")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed book b1.")
}

func TestBookRemoveCommand_NotFound(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "book", "remove", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Remove rejected: BOOK_NOT_FOUND")
}

func TestBookListCommand_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "book", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No books in the catalogue.")
}

func TestBookGetCommand_ShowsQueue(t *testing.T) {
	books, _ := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1", ReservationQueue: []string{"m2", "m3"}})

	out, err := executeCommand(t, "book", "get", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "loaned to m1")
	assert.Contains(t, out, "Queue: [m2 m3]")
}

func TestMemberAddCommand(t *testing.T) {
	_, members := setupTestServices(t)

	out, err := executeCommand(t, "member", "add", "Kertu", "--id", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added member m1: Kertu")

	exists, err := members.Exists(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemberSummaryCommand(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade", LoanedTo: "m1"})
	seedBook(t, books, domain.Book{ID: "b2", Title: "Sügis", LoanedTo: "m2", ReservationQueue: []string{"m1"}})

	out, err := executeCommand(t, "member", "summary", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "Loans (1):")
	assert.Contains(t, out, "Reservations (1):")
	assert.Contains(t, out, "b2  (position 1)")
}

func TestMemberSummaryCommand_NotFound(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "member", "summary", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "Member ghost not found.")
}

func TestSearchCommand_TitleFilter(t *testing.T) {
	books, _ := setupTestServices(t)
	seedBook(t, books, domain.Book{ID: "b1", Title: "Kevade"})
	seedBook(t, books, domain.Book{ID: "b2", Title: "Sügis"})

	out, err := executeCommand(t, "search", "--title", "kev")
	require.NoError(t, err)
	assert.Contains(t, out, "Kevade")
	assert.NotContains(t, out, "Sügis")
}

func TestSearchCommand_ConflictingFlags(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "search", "--available", "--loaned")
	assert.Error(t, err)
}

func TestOverdueCommand_WithAsOf(t *testing.T) {
	books, members := setupTestServices(t)
	seedMember(t, members, domain.Member{ID: "m1", Name: "Kertu"})
	seedBook(t, books, domain.Book{
		ID:       "b1",
		Title:    "Kevade",
		LoanedTo: "m1",
		DueDate:  mustParseDate(t, "2026-01-10"),
	})

	out, err := executeCommand(t, "overdue", "--as-of", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Kevade")
}

func TestOverdueCommand_InvalidDate(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "overdue", "--as-of", "not-a-date")
	assert.Error(t, err)
}

func TestOverdueCommand_NoneOverdue(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "No overdue loans.")
}
