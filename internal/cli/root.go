package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/martijn/fitclub/internal/core/repository"
	"github.com/martijn/fitclub/internal/core/service"
	"github.com/martijn/fitclub/internal/infrastructure/sqlite"
	"github.com/martijn/fitclub/internal/logger"
	"github.com/martijn/fitclub/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fitclub",
	Short: "Fitclub - fitness club membership management",
	Long: `Fitclub is a console application for managing a fitness club.

It tracks:
- Clients and their contact details
- Membership plans with derived pricing and soft deactivation
- Trainers
- Member-to-plan assignments with expiry tracking and revenue reporting`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log = logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fitclub.yml)")
}

// initServices initializes the database, repositories, and services
func initServices() (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	clientRepo := sqlite.NewClientRepository(db)
	membershipRepo := sqlite.NewMembershipRepository(db)
	trainerRepo := sqlite.NewTrainerRepository(db)
	assignmentRepo := sqlite.NewAssignmentRepository(db)

	membershipService := service.NewMembershipService(membershipRepo, cfg.BasePricePerDay, log)
	clientService := service.NewClientService(clientRepo, membershipRepo, assignmentRepo, cfg.ProtectAssignedClients, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, clientRepo, membershipRepo, log)
	trainerService := service.NewTrainerService(trainerRepo, log)

	return &Services{
		DB:                db,
		ClientRepo:        clientRepo,
		MembershipRepo:    membershipRepo,
		TrainerRepo:       trainerRepo,
		AssignmentRepo:    assignmentRepo,
		ClientService:     clientService,
		MembershipService: membershipService,
		AssignmentService: assignmentService,
		TrainerService:    trainerService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB                *sqlite.DB
	ClientRepo        repository.ClientRepository
	MembershipRepo    repository.MembershipRepository
	TrainerRepo       repository.TrainerRepository
	AssignmentRepo    repository.AssignmentRepository
	ClientService     *service.ClientService
	MembershipService *service.MembershipService
	AssignmentService *service.AssignmentService
	TrainerService    *service.TrainerService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
