package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanelv/libris/internal/core/domain"
)

var (
	searchTitle     string
	searchAvailable bool
	searchLoaned    bool
	searchHolder    string

	overdueAsOf string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalogue",
	Long: `Searches books by title substring, availability, or current
holder. Filters combine; no filters lists everything.`,
	RunE: runSearch,
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List overdue loans",
	RunE:  runOverdue,
}

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "title substring (case-insensitive)")
	searchCmd.Flags().BoolVar(&searchAvailable, "available", false, "only available books")
	searchCmd.Flags().BoolVar(&searchLoaned, "loaned", false, "only books on loan")
	searchCmd.Flags().StringVar(&searchHolder, "holder", "", "only books loaned to this member")
	overdueCmd.Flags().StringVar(&overdueAsOf, "as-of", "", "reference date, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(overdueCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	filter := domain.BookFilter{
		TitleContains: searchTitle,
		LoanedTo:      searchHolder,
	}
	switch {
	case searchAvailable && searchLoaned:
		return errors.New("--available and --loaned are mutually exclusive")
	case searchAvailable:
		v := true
		filter.AvailableOnly = &v
	case searchLoaned:
		v := false
		filter.AvailableOnly = &v
	}

	books, err := reportService.SearchBooks(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(books) == 0 {
		cmd.Println("No matching books.")
		return nil
	}

	for i := range books {
		printBookLine(cmd, &books[i])
	}
	return nil
}

func runOverdue(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	asOf := time.Now().UTC()
	if overdueAsOf != "" {
		parsed, err := time.Parse(time.DateOnly, overdueAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %w", err)
		}
		asOf = parsed
	}

	books, err := reportService.OverdueBooks(context.Background(), asOf)
	if err != nil {
		return fmt.Errorf("overdue query failed: %w", err)
	}

	if len(books) == 0 {
		cmd.Println("No overdue loans.")
		return nil
	}

	for i := range books {
		printBookLine(cmd, &books[i])
	}
	return nil
}
