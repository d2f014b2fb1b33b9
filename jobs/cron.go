// Package jobs runs the periodic room reconciliation.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/occupancy/model"
	"frontdesk/internal/domains/occupancy/service"
	"frontdesk/shared/constant"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	cron      *cron.Cron
	occupancy service.Occupancy
	cfg       *config.Config
	otel      otel.Otel
}

func New(cfg *config.Config, occupancy service.Occupancy, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		occupancy: occupancy,
		cfg:       cfg,
		otel:      otel,
	}
}

// Start registers the reconcile job on RECONCILER_SCHEDULE and starts the cron loop.
// It is a no-op when the reconciler is disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Reconciler.Enable {
		log.Info().Msg("room reconciler disabled")

		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Reconciler.Schedule, s.ReconcileRooms); err != nil {
		return fmt.Errorf("failed to schedule room reconciler: %w", err)
	}

	s.cron.Start()

	log.Info().Str("schedule", s.cfg.Reconciler.Schedule).Msg("room reconciler scheduled")

	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		log.Info().Msg("room reconciler stopped")
	case <-ctx.Done():
		log.Warn().Msg("room reconciler still running at shutdown")
	}
}

// ReconcileRooms is the cron entry point. Failures are logged and retried on the next tick.
func (s *Scheduler) ReconcileRooms() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		log.Error().Err(err).Msg("scheduled room reconciliation finished with errors")
	}
}

// RunOnce reconciles the given rooms, or every room when none are given, as the system user.
func (s *Scheduler) RunOnce(ctx context.Context, roomIDs ...string) (_ map[model.Outcome]int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".RunOnce")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)

	if len(roomIDs) == 0 {
		var outcomes map[model.Outcome]int

		outcomes, err = s.occupancy.ReconcileAll(ctx)
		record(scope, outcomes)

		return outcomes, err //nolint:wrapcheck
	}

	outcomes := map[model.Outcome]int{}

	var errs []error

	for _, roomID := range roomIDs {
		outcome, reconcileErr := s.occupancy.Reconcile(ctx, roomID)
		if reconcileErr != nil {
			errs = append(errs, fmt.Errorf("room %s: %w", roomID, reconcileErr))

			continue
		}

		outcomes[outcome]++
	}

	record(scope, outcomes)

	err = errors.Join(errs...)

	return outcomes, err
}

func record(scope otel.Scope, outcomes map[model.Outcome]int) {
	for outcome, total := range outcomes {
		scope.SetAttribute("reconcile."+outcome.String(), total)
	}
}
