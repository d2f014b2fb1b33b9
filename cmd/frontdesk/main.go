package main

import (
	"fmt"
	"os"

	"frontdesk/config"
	_ "frontdesk/docs"
	"frontdesk/shared/logger"

	"github.com/spf13/cobra"
)

// @title						Frontdesk API
// @version					1.0
// @description				Hotel front desk: rooms, bookings, guests, orders and payments.
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						X-API-Key
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "frontdesk",
		Short:         "Hotel front desk service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger.InitLogger()
			logger.Configure(config.Get())

			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		reconcileCmd(),
	)

	return rootCmd
}
