package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanelv/libris/internal/adapters/driven/storage/memory"
	"github.com/tanelv/libris/internal/core/domain"
)

func newCatalogFixture() (*CatalogService, *memory.BookStore, *memory.MemberStore) {
	books := memory.NewBookStore()
	members := memory.NewMemberStore()
	return NewCatalogService(books, members), books, members
}

func TestCreateBook(t *testing.T) {
	catalog, books, _ := newCatalogFixture()
	ctx := context.Background()

	result, err := catalog.CreateBook(ctx, "b1", "Rehepapp")
	require.NoError(t, err)
	assert.True(t, result.OK)

	book, err := books.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Rehepapp", book.Title)
	assert.Empty(t, book.LoanedTo)
	assert.Empty(t, book.ReservationQueue)
}

func TestCreateBook_RejectsEmptyFields(t *testing.T) {
	catalog, _, _ := newCatalogFixture()
	ctx := context.Background()

	for _, tc := range []struct{ id, title string }{
		{"", "Rehepapp"},
		{"b1", ""},
	} {
		result, err := catalog.CreateBook(ctx, tc.id, tc.title)
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonInvalidRequest, result.Reason)
	}
}

func TestRenameBook_KeepsLendingState(t *testing.T) {
	catalog, books, _ := newCatalogFixture()
	ctx := context.Background()
	require.NoError(t, books.Save(ctx, domain.Book{
		ID:               "b1",
		Title:            "Old",
		LoanedTo:         "m1",
		DueDate:          time.Now().AddDate(0, 0, 14),
		ReservationQueue: []string{"m2"},
	}))

	result, err := catalog.RenameBook(ctx, "b1", "New")
	require.NoError(t, err)
	assert.True(t, result.OK)

	book, err := books.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "New", book.Title)
	assert.Equal(t, "m1", book.LoanedTo)
	assert.Equal(t, []string{"m2"}, book.ReservationQueue)
}

func TestRenameBook_NotFound(t *testing.T) {
	catalog, _, _ := newCatalogFixture()

	result, err := catalog.RenameBook(context.Background(), "missing", "New")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonBookNotFound, result.Reason)
}

func TestDeleteBook(t *testing.T) {
	catalog, books, _ := newCatalogFixture()
	ctx := context.Background()
	require.NoError(t, books.Save(ctx, domain.Book{ID: "b1", Title: "Rehepapp"}))

	result, err := catalog.DeleteBook(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, result.OK)

	exists, err := books.Exists(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteBook_NotFound(t *testing.T) {
	catalog, _, _ := newCatalogFixture()

	result, err := catalog.DeleteBook(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonBookNotFound, result.Reason)
}

func TestCreateMember(t *testing.T) {
	catalog, _, members := newCatalogFixture()
	ctx := context.Background()

	result, err := catalog.CreateMember(ctx, "m1", "Kertu")
	require.NoError(t, err)
	assert.True(t, result.OK)

	member, err := members.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Kertu", member.Name)
}

func TestCreateMember_RejectsEmptyFields(t *testing.T) {
	catalog, _, _ := newCatalogFixture()
	ctx := context.Background()

	result, err := catalog.CreateMember(ctx, "", "Kertu")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonInvalidRequest, result.Reason)

	result, err = catalog.CreateMember(ctx, "m1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonInvalidRequest, result.Reason)
}

func TestRenameMember(t *testing.T) {
	catalog, _, members := newCatalogFixture()
	ctx := context.Background()
	require.NoError(t, members.Save(ctx, domain.Member{ID: "m1", Name: "Kertu"}))

	result, err := catalog.RenameMember(ctx, "m1", "Kertu T.")
	require.NoError(t, err)
	assert.True(t, result.OK)

	member, err := members.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Kertu T.", member.Name)
}

func TestRenameMember_NotFound(t *testing.T) {
	catalog, _, _ := newCatalogFixture()

	result, err := catalog.RenameMember(context.Background(), "missing", "Name")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonMemberNotFound, result.Reason)
}

func TestDeleteMember_LeavesLendingStateIntact(t *testing.T) {
	catalog, books, members := newCatalogFixture()
	ctx := context.Background()
	require.NoError(t, members.Save(ctx, domain.Member{ID: "m1", Name: "Kertu"}))
	require.NoError(t, books.Save(ctx, domain.Book{
		ID:               "b1",
		Title:            "Rehepapp",
		LoanedTo:         "m1",
		ReservationQueue: []string{"m1"},
	}))

	result, err := catalog.DeleteMember(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, result.OK)

	// Deletion never scrubs queues or loans; the lending engine skips
	// the dangling id on its own.
	book, err := books.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "m1", book.LoanedTo)
	assert.Equal(t, []string{"m1"}, book.ReservationQueue)
}

func TestDeleteMember_NotFound(t *testing.T) {
	catalog, _, _ := newCatalogFixture()

	result, err := catalog.DeleteMember(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonMemberNotFound, result.Reason)
}

func TestListBooksAndMembers(t *testing.T) {
	catalog, books, members := newCatalogFixture()
	ctx := context.Background()
	require.NoError(t, books.Save(ctx, domain.Book{ID: "b1", Title: "Rehepapp"}))
	require.NoError(t, books.Save(ctx, domain.Book{ID: "b2", Title: "Tõde ja õigus"}))
	require.NoError(t, members.Save(ctx, domain.Member{ID: "m1", Name: "Kertu"}))

	allBooks, err := catalog.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, allBooks, 2)

	allMembers, err := catalog.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, allMembers, 1)
}
