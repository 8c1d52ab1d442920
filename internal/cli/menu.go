package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/domain"
)

// menuCmd runs the interactive console menu. Input is parsed into primitives
// only; every business rule stays in the services, and a failed operation
// prints its message and returns to the menu.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive console menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		m := &menu{
			services: services,
			in:       bufio.NewScanner(os.Stdin),
		}
		m.run(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

type menu struct {
	services *Services
	in       *bufio.Scanner
}

func (m *menu) run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("=== Fitclub ===")
		fmt.Println("1. Clients")
		fmt.Println("2. Memberships")
		fmt.Println("3. Assignments")
		fmt.Println("0. Exit")

		switch m.readString("Choice") {
		case "1":
			m.clientMenu(ctx)
		case "2":
			m.membershipMenu(ctx)
		case "3":
			m.assignmentMenu(ctx)
		case "0":
			return
		default:
			fmt.Println("Unknown option")
		}
	}
}

func (m *menu) clientMenu(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("--- Clients ---")
		fmt.Println("1. List")
		fmt.Println("2. Register")
		fmt.Println("3. Update")
		fmt.Println("4. Delete")
		fmt.Println("5. Search")
		fmt.Println("0. Back")

		var err error
		switch m.readString("Choice") {
		case "1":
			err = m.listClients(ctx)
		case "2":
			err = m.registerClient(ctx)
		case "3":
			err = m.updateClient(ctx)
		case "4":
			err = m.deleteClient(ctx)
		case "5":
			err = m.searchClients(ctx)
		case "0":
			return
		default:
			fmt.Println("Unknown option")
		}

		if err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func (m *menu) listClients(ctx context.Context) error {
	clients, err := m.services.ClientService.List(ctx)
	if err != nil {
		return err
	}
	printClients(clients)
	return nil
}

func (m *menu) readClientFields(client *domain.Client) error {
	client.FirstName = m.readString("First name")
	client.LastName = m.readString("Last name")
	client.Phone = m.readString("Phone")

	membershipID, err := m.readInt("Membership plan id")
	if err != nil {
		return err
	}
	client.MembershipID = int64(membershipID)

	client.Email = optString(m.readString("Email (optional)"))
	birthDate, err := m.readOptionalDate("Birth date YYYY-MM-DD (optional)")
	if err != nil {
		return err
	}
	client.BirthDate = birthDate
	client.HealthInfo = optString(m.readString("Health notes (optional)"))
	return nil
}

func (m *menu) registerClient(ctx context.Context) error {
	var client domain.Client
	if err := m.readClientFields(&client); err != nil {
		return err
	}

	id, err := m.services.ClientService.Register(ctx, &client)
	if err != nil {
		return err
	}
	fmt.Printf("Client registered with ID %d\n", id)
	return nil
}

func (m *menu) updateClient(ctx context.Context) error {
	id, err := m.readInt("Client id")
	if err != nil {
		return err
	}

	var client domain.Client
	client.ID = int64(id)
	if err := m.readClientFields(&client); err != nil {
		return err
	}

	if err := m.services.ClientService.Update(ctx, &client); err != nil {
		return err
	}
	fmt.Println("Client updated")
	return nil
}

func (m *menu) deleteClient(ctx context.Context) error {
	id, err := m.readInt("Client id")
	if err != nil {
		return err
	}

	if err := m.services.ClientService.Delete(ctx, int64(id)); err != nil {
		return err
	}
	fmt.Println("Client deleted")
	return nil
}

func (m *menu) searchClients(ctx context.Context) error {
	clients, err := m.services.ClientService.Search(ctx, m.readString("Search term"))
	if err != nil {
		return err
	}
	printClients(clients)
	return nil
}

func (m *menu) membershipMenu(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("--- Memberships ---")
		fmt.Println("1. List all")
		fmt.Println("2. List active")
		fmt.Println("3. Create")
		fmt.Println("4. Deactivate")
		fmt.Println("5. Price calculator")
		fmt.Println("0. Back")

		var err error
		switch m.readString("Choice") {
		case "1":
			err = m.listMemberships(ctx, false)
		case "2":
			err = m.listMemberships(ctx, true)
		case "3":
			err = m.createMembership(ctx)
		case "4":
			err = m.deactivateMembership(ctx)
		case "5":
			err = m.priceCalculator()
		case "0":
			return
		default:
			fmt.Println("Unknown option")
		}

		if err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func (m *menu) listMemberships(ctx context.Context, activeOnly bool) error {
	var memberships []*domain.Membership
	var err error
	if activeOnly {
		memberships, err = m.services.MembershipService.ListActive(ctx)
	} else {
		memberships, err = m.services.MembershipService.List(ctx)
	}
	if err != nil {
		return err
	}

	if len(memberships) == 0 {
		fmt.Println("No memberships found")
		return nil
	}
	for _, plan := range memberships {
		fmt.Printf("%d. %s: %d days, %.2f, level %d, active=%t\n",
			plan.ID, plan.Type, plan.DurationDays, plan.Price, plan.AccessLevel, plan.IsActive)
	}
	return nil
}

func (m *menu) createMembership(ctx context.Context) error {
	membershipType := m.readString("Type")
	durationDays, err := m.readInt("Duration in days")
	if err != nil {
		return err
	}
	accessLevel, err := m.readInt("Access level (1-3)")
	if err != nil {
		return err
	}
	price, err := m.readFloat("Price (0 to derive)")
	if err != nil {
		return err
	}

	membership := domain.NewMembership(membershipType, durationDays, accessLevel)
	membership.Price = price
	membership.Description = optString(m.readString("Description (optional)"))

	id, err := m.services.MembershipService.Create(ctx, membership)
	if err != nil {
		return err
	}
	fmt.Printf("Membership created with ID %d (price %.2f)\n", id, membership.Price)
	return nil
}

func (m *menu) deactivateMembership(ctx context.Context) error {
	id, err := m.readInt("Membership id")
	if err != nil {
		return err
	}

	if err := m.services.MembershipService.Deactivate(ctx, int64(id)); err != nil {
		return err
	}
	fmt.Println("Membership deactivated")
	return nil
}

func (m *menu) priceCalculator() error {
	durationDays, err := m.readInt("Duration in days")
	if err != nil {
		return err
	}
	accessLevel, err := m.readInt("Access level (1-3)")
	if err != nil {
		return err
	}

	price, err := m.services.MembershipService.CalculatePrice(durationDays, accessLevel)
	if err != nil {
		return err
	}
	fmt.Printf("Price: %.2f\n", price)
	return nil
}

func (m *menu) assignmentMenu(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("--- Assignments ---")
		fmt.Println("1. List active")
		fmt.Println("2. Assign plan to client")
		fmt.Println("3. Expired")
		fmt.Println("4. Expiring soon")
		fmt.Println("5. Revenue for period")
		fmt.Println("0. Back")

		var err error
		switch m.readString("Choice") {
		case "1":
			err = m.listActiveAssignments(ctx)
		case "2":
			err = m.assignMembership(ctx)
		case "3":
			err = m.listExpired(ctx)
		case "4":
			err = m.listExpiring(ctx)
		case "5":
			err = m.showRevenue(ctx)
		case "0":
			return
		default:
			fmt.Println("Unknown option")
		}

		if err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func (m *menu) listActiveAssignments(ctx context.Context) error {
	details, err := m.services.AssignmentService.GetActive(ctx)
	if err != nil {
		return err
	}
	printAssignments(details)
	return nil
}

func (m *menu) assignMembership(ctx context.Context) error {
	memberID, err := m.readInt("Client id")
	if err != nil {
		return err
	}
	membershipID, err := m.readInt("Membership id")
	if err != nil {
		return err
	}
	start, err := m.readOptionalDate("Start date YYYY-MM-DD (empty for today)")
	if err != nil {
		return err
	}
	if start == nil {
		now := time.Now()
		start = &now
	}

	assignment, err := m.services.AssignmentService.Assign(ctx, int64(memberID), int64(membershipID), *start)
	if err != nil {
		return err
	}
	fmt.Printf("Assigned, valid until %s\n", assignment.EndDate.Format(dateFormat))
	return nil
}

func (m *menu) listExpired(ctx context.Context) error {
	details, err := m.services.AssignmentService.GetExpired(ctx)
	if err != nil {
		return err
	}
	printAssignments(details)
	return nil
}

func (m *menu) listExpiring(ctx context.Context) error {
	days, err := m.readInt("Within how many days")
	if err != nil {
		return err
	}

	details, err := m.services.AssignmentService.GetExpiring(ctx, days)
	if err != nil {
		return err
	}
	printAssignments(details)
	return nil
}

func (m *menu) showRevenue(ctx context.Context) error {
	from, err := m.readDate("From YYYY-MM-DD")
	if err != nil {
		return err
	}
	to, err := m.readDate("To YYYY-MM-DD")
	if err != nil {
		return err
	}

	total, err := m.services.AssignmentService.TotalRevenue(ctx, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("Revenue: %.2f\n", total)
	return nil
}

func (m *menu) readString(prompt string) string {
	fmt.Printf("%s: ", prompt)
	if !m.in.Scan() {
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *menu) readInt(prompt string) (int, error) {
	raw := m.readString(prompt)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", raw)
	}
	return v, nil
}

func (m *menu) readFloat(prompt string) (float64, error) {
	raw := m.readString(prompt)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", raw)
	}
	return v, nil
}

func (m *menu) readDate(prompt string) (time.Time, error) {
	return parseDate(m.readString(prompt))
}

func (m *menu) readOptionalDate(prompt string) (*time.Time, error) {
	raw := m.readString(prompt)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
