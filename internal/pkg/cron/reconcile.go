package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	bonusService "github.com/Jimmy4745/lovable-dispatch/internal/service/bonus"
)

type ReconcileJobs struct {
	reconciler bonus.Reconciler
	loadRepo   load.LoadRepository
	driverRepo driver.DriverRepository
	now        func() time.Time
}

func NewReconcileJobs(
	reconciler bonus.Reconciler,
	loadRepo load.LoadRepository,
	driverRepo driver.DriverRepository,
	now func() time.Time,
) *ReconcileJobs {
	if now == nil {
		now = time.Now
	}
	return &ReconcileJobs{
		reconciler: reconciler,
		loadRepo:   loadRepo,
		driverRepo: driverRepo,
		now:        now,
	}
}

func (j *ReconcileJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("reconcile_current_week", interval, j.ReconcileCurrentWeek)
}

// ReconcileCurrentWeek reconciles the automatic bonuses of the current
// calendar week for every owner with drivers, so a new week gets its bonuses
// without waiting for a load edit. One owner failing does not stop the rest.
func (j *ReconcileJobs) ReconcileCurrentWeek(ctx context.Context) error {
	owners, err := j.driverRepo.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}

	today := payroll.Date(j.now())
	var errs []error
	changed := 0

	for _, userID := range owners {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := bonusService.ReconcileOwner(ctx, j.reconciler, j.loadRepo, j.driverRepo, userID, today)
		if err != nil {
			errs = append(errs, fmt.Errorf("owner %s: %w", userID, err))
			continue
		}
		if result.Changed() {
			changed++
		}
	}

	slog.Info("Cron: current week reconciled",
		"week_of", payroll.FormatDate(today),
		"owners", len(owners),
		"owners_changed", changed,
		"owners_failed", len(errs),
	)

	return errors.Join(errs...)
}
