package main

import (
	"fmt"

	"frontdesk/config"
	"frontdesk/di"
	"frontdesk/helper"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the room reconciler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")

			if migrate || config.Get().DB.Postgres.AutoMigrate {
				if err := helper.Run(config.Get(), helper.ActionUp); err != nil {
					return err //nolint:wrapcheck
				}
			}

			server, err := di.InitializeService()
			if err != nil {
				return fmt.Errorf("failed to initialize service: %w", err)
			}

			server.Serve()

			return nil
		},
	}

	cmd.Flags().Bool("migrate", false, "apply pending migrations before serving")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|step-up|drop]",
		Short:     "Run database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(helper.ActionUp), string(helper.ActionDown), string(helper.ActionStepUp), string(helper.ActionDrop)},
		RunE: func(_ *cobra.Command, args []string) error {
			action, err := helper.ParseAction(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}

			return helper.Run(config.Get(), action) //nolint:wrapcheck
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [room-id...]",
		Short: "Reconcile room status from bookings once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduler, err := di.InitializeScheduler()
			if err != nil {
				return fmt.Errorf("failed to initialize reconciler: %w", err)
			}

			outcomes, err := scheduler.RunOnce(cmd.Context(), args...)

			for outcome, total := range outcomes {
				log.Info().Str("outcome", outcome.String()).Int("rooms", total).Msg("reconciled")
			}

			if err != nil {
				return fmt.Errorf("reconciliation finished with errors: %w", err)
			}

			return nil
		},
	}
}
