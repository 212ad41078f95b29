package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tanelv/libris/internal/core/domain"
)

var memberID string

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage library members",
	Long: `Add, rename, remove, or inspect member records. Removing a
member does not clear their loans or reservations; the lending engine
treats the missing member as ineligible from then on.`,
}

var memberAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberAdd,
}

var memberRenameCmd = &cobra.Command{
	Use:   "rename [member-id] [name]",
	Short: "Change a member's name",
	Args:  cobra.ExactArgs(2),
	RunE:  runMemberRename,
}

var memberRemoveCmd = &cobra.Command{
	Use:   "remove [member-id]",
	Short: "Remove a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberRemove,
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all members",
	RunE:  runMemberList,
}

var memberSummaryCmd = &cobra.Command{
	Use:   "summary [member-id]",
	Short: "Show a member's loans and reservations",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberSummary,
}

func init() {
	memberAddCmd.Flags().StringVar(&memberID, "id", "", "member id (generated when omitted)")
	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberRenameCmd)
	memberCmd.AddCommand(memberRemoveCmd)
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberSummaryCmd)
	rootCmd.AddCommand(memberCmd)
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	id := memberID
	if id == "" {
		id = uuid.NewString()
	}

	result, err := catalogService.CreateMember(context.Background(), id, args[0])
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}
	if !result.OK {
		cmd.Printf("Add rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Added member %s: %s\n", id, args[0])
	return nil
}

func runMemberRename(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	result, err := catalogService.RenameMember(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("renaming member: %w", err)
	}
	if !result.OK {
		cmd.Printf("Rename rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Renamed member %s.\n", args[0])
	return nil
}

func runMemberRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	result, err := catalogService.DeleteMember(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	if !result.OK {
		cmd.Printf("Remove rejected: %s\n", result.Reason)
		return nil
	}

	cmd.Printf("Removed member %s.\n", args[0])
	return nil
}

func runMemberList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	members, err := catalogService.ListMembers(context.Background())
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}

	if len(members) == 0 {
		cmd.Println("No registered members.")
		return nil
	}

	for _, member := range members {
		cmd.Printf("%s  %s\n", member.ID, member.Name)
	}
	return nil
}

func runMemberSummary(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	summary, err := reportService.MemberSummary(context.Background(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Member %s not found.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("building summary: %w", err)
	}

	cmd.Printf("Member %s\n", args[0])
	cmd.Printf("Loans (%d):\n", len(summary.Loans))
	for i := range summary.Loans {
		printBookLine(cmd, &summary.Loans[i])
	}
	cmd.Printf("Reservations (%d):\n", len(summary.Reservations))
	for _, r := range summary.Reservations {
		cmd.Printf("%s  (position %d)\n", r.BookID, r.Position+1)
	}
	return nil
}
