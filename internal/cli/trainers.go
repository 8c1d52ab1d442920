package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/domain"
)

var trainersCmd = &cobra.Command{
	Use:   "trainers",
	Short: "Manage trainers",
}

var (
	trainerSpecialization string
	trainerHireDate       string
	trainerSalary         float64
	trainerCertification  string
)

func trainerFromFlags(firstName, lastName string) (*domain.Trainer, error) {
	hireDate := time.Now()
	if trainerHireDate != "" {
		var err error
		hireDate, err = parseDate(trainerHireDate)
		if err != nil {
			return nil, err
		}
	}

	return &domain.Trainer{
		FirstName:      firstName,
		LastName:       lastName,
		Specialization: optString(trainerSpecialization),
		HireDate:       hireDate,
		Salary:         trainerSalary,
		Certification:  optString(trainerCertification),
	}, nil
}

var trainersAddCmd = &cobra.Command{
	Use:   "add <first-name> <last-name>",
	Short: "Add a trainer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trainer, err := trainerFromFlags(args[0], args[1])
		if err != nil {
			return err
		}

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		id, err := services.TrainerService.Create(cmd.Context(), trainer)
		if err != nil {
			return err
		}

		fmt.Printf("Trainer created with ID %d\n", id)
		return nil
	},
}

var trainersUpdateCmd = &cobra.Command{
	Use:   "update <id> <first-name> <last-name>",
	Short: "Update a trainer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		trainer, err := trainerFromFlags(args[1], args[2])
		if err != nil {
			return err
		}
		trainer.ID = id

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.TrainerService.Update(cmd.Context(), trainer); err != nil {
			return err
		}

		fmt.Printf("Trainer %d updated\n", id)
		return nil
	},
}

var trainersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trainer",
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

		if err := services.TrainerService.Delete(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Trainer %d deleted\n", id)
		return nil
	},
}

var trainersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trainers",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		trainers, err := services.TrainerService.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(trainers) == 0 {
			fmt.Println("No trainers found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION\tHIRED\tSALARY")
		for _, trainer := range trainers {
			specialization := ""
			if trainer.Specialization != nil {
				specialization = *trainer.Specialization
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				trainer.ID,
				trainer.FullName(),
				specialization,
				trainer.HireDate.Format(dateFormat),
				strconv.FormatFloat(trainer.Salary, 'f', 2, 64),
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{trainersAddCmd, trainersUpdateCmd} {
		cmd.Flags().StringVar(&trainerSpecialization, "specialization", "", "trainer specialization")
		cmd.Flags().StringVar(&trainerHireDate, "hire-date", "", "hire date (YYYY-MM-DD, default today)")
		cmd.Flags().Float64Var(&trainerSalary, "salary", 0, "monthly salary")
		cmd.Flags().StringVar(&trainerCertification, "certification", "", "certification")
	}

	rootCmd.AddCommand(trainersCmd)
	trainersCmd.AddCommand(trainersAddCmd)
	trainersCmd.AddCommand(trainersUpdateCmd)
	trainersCmd.AddCommand(trainersDeleteCmd)
	trainersCmd.AddCommand(trainersListCmd)
}
