package main

import (
	"fmt"
	"strings"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/bootstrap"
	"github.com/spf13/cobra"
)

// migrateCmd applies pending migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var adminFlags struct {
	email    string
	name     string
	password string
	role     string
}

// createAdminCmd creates a dashboard account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a dashboard account",
	Long: `Create a dashboard account. Admins can change and delete
registrations; staff can read them and check passes in.`,
	Args: cobra.NoArgs,
	RunE: runCreateAdmin,
}

// resendPassesCmd retries pass emails that never went out
var resendPassesCmd = &cobra.Command{
	Use:   "resend-passes",
	Short: "Email every pass that was never delivered",
	Args:  cobra.NoArgs,
	RunE:  runResendPasses,
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.email, "email", "", "Account email (required)")
	f.StringVar(&adminFlags.name, "name", "", "Full name (required)")
	f.StringVar(&adminFlags.password, "password", "", "Password, at least 8 characters with a letter and a digit (required)")
	f.StringVar(&adminFlags.role, "role", string(models.RoleAdmin), "admin or staff")
	for _, name := range []string{"email", "name", "password"} {
		_ = createAdminCmd.MarkFlagRequired(name)
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	database, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := bootstrap.RunMigrations(cmd.Context(), cfg, database, lgr); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	role := models.RoleType(strings.ToLower(adminFlags.role))
	if !role.Valid() {
		return fmt.Errorf("--role must be admin or staff, got %q", adminFlags.role)
	}

	deps, cleanup, err := loadDependencies()
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := deps.AuthService.CreateUser(cmd.Context(), adminFlags.email, adminFlags.name, adminFlags.password, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}

func runResendPasses(cmd *cobra.Command, _ []string) error {
	deps, cleanup, err := loadDependencies()
	if err != nil {
		return err
	}
	defer cleanup()

	sent, failed, err := deps.PassService.ResendPending(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d pass(es), %d failed\n", sent, failed)
	if failed > 0 {
		return fmt.Errorf("%d pass(es) could not be emailed", failed)
	}
	return nil
}

// loadDependencies wires the services against an already migrated database.
func loadDependencies() (*bootstrap.Dependencies, func(), error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, nil, err
	}
	database, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, nil, err
	}
	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return deps, database.Close, nil
}
