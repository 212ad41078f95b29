package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reserveCmd = &cobra.Command{
	Use:   "reserve [book-id] [member-id]",
	Short: "Reserve a book",
	Long: `Queues the member for a loaned book. Reserving an available
book with an empty queue grants the loan immediately instead of
queueing.`,
	Args: cobra.ExactArgs(2),
	RunE: runReserve,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [book-id] [member-id]",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(2),
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(reserveCmd)
	rootCmd.AddCommand(cancelCmd)
}

func runReserve(cmd *cobra.Command, args []string) error {
	bookID, memberID := args[0], args[1]

	if lendingService == nil {
		return errors.New("lending service not configured")
	}

	result, err := lendingService.Reserve(context.Background(), bookID, memberID)
	if err != nil {
		return fmt.Errorf("reserve failed: %w", err)
	}

	if !result.OK {
		cmd.Printf("Reserve rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Reservation accepted for %s on book %s.\n", memberID, bookID)
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	bookID, memberID := args[0], args[1]

	if lendingService == nil {
		return errors.New("lending service not configured")
	}

	result, err := lendingService.CancelReservation(context.Background(), bookID, memberID)
	if err != nil {
		return fmt.Errorf("cancel failed: %w", err)
	}

	if !result.OK {
		cmd.Printf("Cancel rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Reservation cancelled for %s on book %s.\n", memberID, bookID)
	return nil
}
