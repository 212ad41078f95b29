package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var extendDays int

var extendCmd = &cobra.Command{
	Use:   "extend [book-id]",
	Short: "Extend an active loan",
	Long: `Moves the due date of an active loan by the given number of
days. Negative values shorten the loan; zero is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtend,
}

func init() {
	extendCmd.Flags().IntVarP(&extendDays, "days", "d", 7, "number of days to extend by")
	rootCmd.AddCommand(extendCmd)
}

func runExtend(cmd *cobra.Command, args []string) error {
	bookID := args[0]

	if lendingService == nil {
		return errors.New("lending service not configured")
	}

	result, err := lendingService.ExtendLoan(context.Background(), bookID, extendDays)
	if err != nil {
		return fmt.Errorf("extend failed: %w", err)
	}

	if !result.OK {
		cmd.Printf("Extend rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Loan on book %s extended by %d days.\n", bookID, extendDays)
	return nil
}
