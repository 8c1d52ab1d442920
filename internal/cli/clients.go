package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/domain"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
}

var (
	clientEmail      string
	clientBirthDate  string
	clientHealthInfo string
)

var clientsAddCmd = &cobra.Command{
	Use:   "add <first-name> <last-name> <phone> <membership-id>",
	Short: "Register a new client",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		membershipID, err := parseID(args[3])
		if err != nil {
			return err
		}
		birthDate, err := optDate(clientBirthDate)
		if err != nil {
			return err
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		client := domain.NewClient(args[0], args[1], args[2], membershipID)
		client.Email = optString(clientEmail)
		client.BirthDate = birthDate
		client.HealthInfo = optString(clientHealthInfo)

		id, err := services.ClientService.Register(cmd.Context(), client)
		if err != nil {
			return err
		}

		fmt.Printf("Client registered with ID %d\n", id)
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <id> <first-name> <last-name> <phone> <membership-id>",
	Short: "Update a client",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		membershipID, err := parseID(args[4])
		if err != nil {
			return err
		}
		birthDate, err := optDate(clientBirthDate)
		if err != nil {
			return err
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		client := domain.NewClient(args[1], args[2], args[3], membershipID)
		client.ID = id
		client.Email = optString(clientEmail)
		client.BirthDate = birthDate
		client.HealthInfo = optString(clientHealthInfo)

		if err := services.ClientService.Update(cmd.Context(), client); err != nil {
			return err
		}

		fmt.Printf("Client %d updated\n", id)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
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

		fmt.Printf("Are you sure you want to delete client %d? (yes/no): ", id)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Cancelled")
			return nil
		}

		if err := services.ClientService.Delete(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Client %d deleted\n", id)
		return nil
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.ClientService.List(cmd.Context())
		if err != nil {
			return err
		}

		printClients(clients)
		return nil
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search clients by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.ClientService.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printClients(clients)
		return nil
	},
}

func printClients(clients []*domain.Client) {
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL\tPLAN ID\tJOINED")
	for _, client := range clients {
		email := ""
		if client.Email != nil {
			email = *client.Email
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			client.ID,
			client.FullName(),
			client.Phone,
			email,
			client.MembershipID,
			client.JoinDate.Format(dateFormat),
		)
	}
	w.Flush()
}

func init() {
	clientsAddCmd.Flags().StringVar(&clientEmail, "email", "", "email address")
	clientsAddCmd.Flags().StringVar(&clientBirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	clientsAddCmd.Flags().StringVar(&clientHealthInfo, "health-info", "", "health notes")
	clientsUpdateCmd.Flags().StringVar(&clientEmail, "email", "", "email address")
	clientsUpdateCmd.Flags().StringVar(&clientBirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	clientsUpdateCmd.Flags().StringVar(&clientHealthInfo, "health-info", "", "health notes")

	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
}
