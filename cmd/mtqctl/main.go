// Command mtqctl runs maintenance tasks against the talent quest database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mtqctl",
	Short: "Maintenance commands for the Maritime Talent Quest backend",
	Long: `mtqctl runs one-off maintenance tasks with the same configuration
as the API server.

Available commands:
  migrate        - Apply pending SQL migrations
  create-admin   - Create a dashboard account
  resend-passes  - Email every pass that was never delivered`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default configs/config.yaml)")
	rootCmd.AddCommand(migrateCmd, createAdminCmd, resendPassesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
