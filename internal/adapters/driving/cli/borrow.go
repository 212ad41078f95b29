package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow [book-id] [member-id]",
	Short: "Borrow a book",
	Long: `Loans the book to the member. When the book has a reservation
queue, only the member at the front of the queue may borrow it, and
borrowing consumes their reservation.`,
	Args: cobra.ExactArgs(2),
	RunE: runBorrow,
}

func init() {
	rootCmd.AddCommand(borrowCmd)
}

func runBorrow(cmd *cobra.Command, args []string) error {
	bookID, memberID := args[0], args[1]

	if lendingService == nil {
		return errors.New("lending service not configured")
	}

	result, err := lendingService.Borrow(context.Background(), bookID, memberID)
	if err != nil {
		return fmt.Errorf("borrow failed: %w", err)
	}

	if !result.OK {
		cmd.Printf("Borrow rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Book %s loaned to %s.\n", bookID, memberID)
	return nil
}
