package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tanelv/libris/internal/core/domain"
)

var bookID string

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalogue",
	Long:  `Add, rename, remove, or inspect catalogue records. These commands never touch lending state.`,
}

var bookAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a book to the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookAdd,
}

var bookRenameCmd = &cobra.Command{
	Use:   "rename [book-id] [title]",
	Short: "Change a book's title",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookRename,
}

var bookRemoveCmd = &cobra.Command{
	Use:   "remove [book-id]",
	Short: "Remove a book from the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookRemove,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	RunE:  runBookList,
}

var bookGetCmd = &cobra.Command{
	Use:   "get [book-id]",
	Short: "Show a book's lending state",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookGet,
}

func init() {
	bookAddCmd.Flags().StringVar(&bookID, "id", "", "book id (generated when omitted)")
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookRenameCmd)
	bookCmd.AddCommand(bookRemoveCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookGetCmd)
	rootCmd.AddCommand(bookCmd)
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	id := bookID
	if id == "" {
		id = uuid.NewString()
	}

	result, err := catalogService.CreateBook(context.Background(), id, args[0])
	if err != nil {
		return fmt.Errorf("adding book: %w", err)
	}
	if !result.OK {
		cmd.Printf("Add rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Added book %s: %s\n", id, args[0])
	return nil
}

func runBookRename(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	result, err := catalogService.RenameBook(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("renaming book: %w", err)
	}
	if !result.OK {
		cmd.Printf("Rename rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Renamed book %s.\n", args[0])
	return nil
}

func runBookRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	result, err := catalogService.DeleteBook(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("removing book: %w", err)
	}
	if !result.OK {
		cmd.Printf("Remove rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Removed book %s.\n", args[0])
	return nil
}

func runBookList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	books, err := catalogService.ListBooks(context.Background())
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(books) == 0 {
		cmd.Println("No books in the catalogue.")
		return nil
	}

	for i := range books {
		printBookLine(cmd, &books[i])
	}
	return nil
}

func runBookGet(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	book, err := catalogService.GetBook(context.Background(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Book %s not found.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting book: %w", err)
	}

	printBookLine(cmd, book)
	if len(book.ReservationQueue) > 0 {
		cmd.Printf("  Queue: %v\n", book.ReservationQueue)
	}
	return nil
}

// printBookLine prints a one-line book summary.
func printBookLine(cmd *cobra.Command, book *domain.Book) {
	if book.Available() {
		cmd.Printf("%s  %s  (available, %d reserved)\n", book.ID, book.Title, len(book.ReservationQueue))
		return
	}
	cmd.Printf("%s  %s  (loaned to %s, due %s, %d reserved)\n",
		book.ID, book.Title, book.LoanedTo, book.DueDate.Format(time.DateOnly), len(book.ReservationQueue))
}
