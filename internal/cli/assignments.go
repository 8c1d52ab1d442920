package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/domain"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Manage membership assignments",
}

var (
	assignmentStart    string
	assignmentMemberID int64
)

var assignmentsAddCmd = &cobra.Command{
	Use:   "add <client-id> <membership-id>",
	Short: "Assign a membership plan to a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, err := parseID(args[0])
		if err != nil {
			return err
		}
		membershipID, err := parseID(args[1])
		if err != nil {
			return err
		}

		start := time.Now()
		if assignmentStart != "" {
			start, err = parseDate(assignmentStart)
			if err != nil {
				return err
			}
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		assignment, err := services.AssignmentService.Assign(cmd.Context(), memberID, membershipID, start)
		if err != nil {
			return err
		}

		fmt.Printf("Assignment %d created, valid until %s\n",
			assignment.ID, assignment.EndDate.Format(dateFormat))
		return nil
	},
}

var assignmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active assignments (or one member's history with --member)",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		var details []*domain.AssignmentDetail
		if assignmentMemberID > 0 {
			details, err = services.AssignmentService.GetByMember(cmd.Context(), assignmentMemberID)
		} else {
			details, err = services.AssignmentService.GetActive(cmd.Context())
		}
		if err != nil {
			return err
		}

		printAssignments(details)
		return nil
	},
}

var assignmentsExpiredCmd = &cobra.Command{
	Use:   "expired",
	Short: "List expired assignments, oldest expiry first",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		details, err := services.AssignmentService.GetExpired(cmd.Context())
		if err != nil {
			return err
		}

		printAssignments(details)
		return nil
	},
}

var assignmentsExpiringCmd = &cobra.Command{
	Use:   "expiring <days>",
	Short: "List assignments ending within the given number of days",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day count: %s", args[0])
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		details, err := services.AssignmentService.GetExpiring(cmd.Context(), days)
		if err != nil {
			return err
		}

		printAssignments(details)
		return nil
	},
}

var assignmentsRevenueCmd = &cobra.Command{
	Use:   "revenue <from> <to>",
	Short: "Total plan revenue for assignments started in a date range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(args[0])
		if err != nil {
			return err
		}
		to, err := parseDate(args[1])
		if err != nil {
			return err
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		total, err := services.AssignmentService.TotalRevenue(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		fmt.Printf("%.2f\n", total)
		return nil
	},
}

func printAssignments(details []*domain.AssignmentDetail) {
	if len(details) == 0 {
		fmt.Println("No assignments found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tPLAN\tSTART\tEND")
	for _, d := range details {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.MemberName,
			d.PlanType,
			d.StartDate.Format(dateFormat),
			d.EndDate.Format(dateFormat),
		)
	}
	w.Flush()
}

func init() {
	assignmentsAddCmd.Flags().StringVar(&assignmentStart, "start", "", "start date (YYYY-MM-DD, default today)")
	assignmentsListCmd.Flags().Int64Var(&assignmentMemberID, "member", 0, "show one member's assignment history")

	rootCmd.AddCommand(assignmentsCmd)
	assignmentsCmd.AddCommand(assignmentsAddCmd)
	assignmentsCmd.AddCommand(assignmentsListCmd)
	assignmentsCmd.AddCommand(assignmentsExpiredCmd)
	assignmentsCmd.AddCommand(assignmentsExpiringCmd)
	assignmentsCmd.AddCommand(assignmentsRevenueCmd)
}
