package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/domain"
)

var membershipsCmd = &cobra.Command{
	Use:   "memberships",
	Short: "Manage membership plans",
}

var (
	membershipPrice       float64
	membershipDescription string
	membershipsActiveOnly bool
)

var membershipsAddCmd = &cobra.Command{
	Use:   "add <type> <duration-days> <access-level>",
	Short: "Create a membership plan",
	Long:  "Create a membership plan. Without --price the price is derived from duration and access level.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		durationDays, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid duration: %s", args[1])
		}
		accessLevel, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid access level: %s", args[2])
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		membership := domain.NewMembership(args[0], durationDays, accessLevel)
		membership.Price = membershipPrice
		membership.Description = optString(membershipDescription)

		id, err := services.MembershipService.Create(cmd.Context(), membership)
		if err != nil {
			return err
		}

		fmt.Printf("Membership created with ID %d (price %.2f)\n", id, membership.Price)
		return nil
	},
}

var membershipsUpdateCmd = &cobra.Command{
	Use:   "update <id> <type> <duration-days> <access-level>",
	Short: "Update a membership plan",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		durationDays, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid duration: %s", args[2])
		}
		accessLevel, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid access level: %s", args[3])
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		existing, err := services.MembershipService.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		membership := domain.NewMembership(args[1], durationDays, accessLevel)
		membership.ID = id
		membership.Price = membershipPrice
		membership.Description = optString(membershipDescription)
		membership.IsActive = existing.IsActive

		if err := services.MembershipService.Update(cmd.Context(), membership); err != nil {
			return err
		}

		fmt.Printf("Membership %d updated (price %.2f)\n", id, membership.Price)
		return nil
	},
}

var membershipsDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a membership plan",
	Long:  "Deactivate a membership plan. The plan is kept for existing clients but no new registrations are accepted against it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.MembershipService.Deactivate(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Membership %d deactivated\n", id)
		return nil
	},
}

var membershipsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List membership plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		var memberships []*domain.Membership
		if membershipsActiveOnly {
			memberships, err = services.MembershipService.ListActive(cmd.Context())
		} else {
			memberships, err = services.MembershipService.List(cmd.Context())
		}
		if err != nil {
			return err
		}

		if len(memberships) == 0 {
			fmt.Println("No memberships found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tDAYS\tPRICE\tLEVEL\tACTIVE")
		for _, m := range memberships {
			fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%d\t%t\n",
				m.ID, m.Type, m.DurationDays, m.Price, m.AccessLevel, m.IsActive)
		}
		w.Flush()

		return nil
	},
}

var membershipsPriceCmd = &cobra.Command{
	Use:   "price <duration-days> <access-level>",
	Short: "Calculate the price of a plan without creating it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		durationDays, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid duration: %s", args[0])
		}
		accessLevel, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid access level: %s", args[1])
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		price, err := services.MembershipService.CalculatePrice(durationDays, accessLevel)
		if err != nil {
			return err
		}

		fmt.Printf("%.2f\n", price)
		return nil
	},
}

func init() {
	membershipsAddCmd.Flags().Float64Var(&membershipPrice, "price", 0, "plan price (derived when omitted)")
	membershipsAddCmd.Flags().StringVar(&membershipDescription, "description", "", "plan description")
	membershipsUpdateCmd.Flags().Float64Var(&membershipPrice, "price", 0, "plan price (derived when omitted)")
	membershipsUpdateCmd.Flags().StringVar(&membershipDescription, "description", "", "plan description")
	membershipsListCmd.Flags().BoolVar(&membershipsActiveOnly, "active", false, "only active plans")

	rootCmd.AddCommand(membershipsCmd)
	membershipsCmd.AddCommand(membershipsAddCmd)
	membershipsCmd.AddCommand(membershipsUpdateCmd)
	membershipsCmd.AddCommand(membershipsDeactivateCmd)
	membershipsCmd.AddCommand(membershipsListCmd)
	membershipsCmd.AddCommand(membershipsPriceCmd)
}
