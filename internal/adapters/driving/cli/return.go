package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var returnCmd = &cobra.Command{
	Use:   "return [book-id] [member-id]",
	Short: "Return a borrowed book",
	Long: `Ends the member's loan. Only the current holder may return a
book. The book is handed off to the first eligible member in the
reservation queue, or becomes available when nobody eligible is waiting.`,
	Args: cobra.ExactArgs(2),
	RunE: runReturn,
}

func init() {
	rootCmd.AddCommand(returnCmd)
}

func runReturn(cmd *cobra.Command, args []string) error {
	bookID, memberID := args[0], args[1]

	if lendingService == nil {
		return errors.New("lending service not configured")
	}

	result, err := lendingService.Return(context.Background(), bookID, memberID)
	if err != nil {
		return fmt.Errorf("return failed: %w", err)
	}

	if !result.OK {
		cmd.Println("Return rejected.")
		return nil
	}

	if result.NextMemberID != "" {
		cmd.Printf("Book %s returned and handed off to %s.\n", bookID, result.NextMemberID)
	} else {
		cmd.Printf("Book %s returned and is now available.\n", bookID)
	}
	return nil
}
