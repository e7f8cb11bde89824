package bonus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	payrollService "github.com/Jimmy4745/lovable-dispatch/internal/service/payroll"
)

// Reconciler keeps exactly one automatic bonus per eligible driver for a
// calendar week. Passes for the same owner run one at a time; manual bonuses
// and other weeks are never read or written.
type Reconciler struct {
	bonusRepo bonus.BonusRepository
	publisher bonus.EventPublisher
	now       func() time.Time

	mu sync.Mutex
	// locks holds one mutex per owner that has reconciled. Entries are never
	// removed, so the map is bounded by the number of owners.
	locks map[string]*sync.Mutex
}

// NewReconciler creates a reconciler. publisher may be nil; now defaults to
// time.Now.
func NewReconciler(bonusRepo bonus.BonusRepository, publisher bonus.EventPublisher, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{
		bonusRepo: bonusRepo,
		publisher: publisher,
		now:       now,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (r *Reconciler) ownerLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	return l
}

// Reconcile diffs the automatic bonuses of the calendar week containing
// req.PeriodStart against eligibility computed from req.Loads. A failed write
// for one driver is logged and recorded in the result; the other drivers are
// still reconciled. Only a failure to read the existing bonuses is returned.
func (r *Reconciler) Reconcile(ctx context.Context, req bonus.ReconcileRequest) (bonus.ReconcileResult, error) {
	lock := r.ownerLock(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	week := payrollService.CalendarWeek(req.PeriodStart)
	today := payroll.Date(r.now())
	result := bonus.ReconcileResult{WeekStart: payroll.FormatDate(week.Start)}

	eligible := make(map[string]payroll.DriverPerformance)
	var order []string
	for _, perf := range payrollService.DriverPerformance(req.Drivers, req.Loads, week) {
		if perf.IsEligible() {
			eligible[perf.DriverID] = perf
			order = append(order, perf.DriverID)
		}
	}

	existing, err := r.bonusRepo.ListAutomaticByWeek(ctx, req.UserID, week.Start)
	if err != nil {
		return result, fmt.Errorf("failed to list automatic bonuses for week %s: %w", result.WeekStart, err)
	}

	// One row per eligible driver is kept; rows of drivers that are no longer
	// eligible and duplicates left by an earlier race are removed.
	current := make(map[string]bonus.Bonus)
	var stale []bonus.Bonus
	for _, b := range existing {
		if !b.IsAutomatic() {
			continue
		}
		if b.DriverID == nil {
			stale = append(stale, b)
			continue
		}
		if _, ok := eligible[*b.DriverID]; !ok {
			stale = append(stale, b)
			continue
		}
		if _, dup := current[*b.DriverID]; dup {
			stale = append(stale, b)
			continue
		}
		current[*b.DriverID] = b
	}

	for _, driverID := range order {
		perf := eligible[driverID]
		note := automaticNote(perf)

		found, ok := current[driverID]
		switch {
		case !ok:
			id := driverID
			created, err := r.bonusRepo.UpsertAutomatic(ctx, bonus.Bonus{
				UserID:    req.UserID,
				DriverID:  &id,
				Type:      bonus.BonusTypeAutomatic,
				Amount:    perf.BonusAmount,
				WeekStart: week.Start,
				Date:      today,
				Note:      note,
			})
			if err != nil {
				r.recordFailure(&result, req.UserID, driverID, "", bonus.ActionCreated, err)
				continue
			}
			result.Created++
			r.publish(ctx, bonus.ActionCreated, created)

		case !found.Amount.Equal(perf.BonusAmount):
			amount := perf.BonusAmount
			err := r.bonusRepo.Update(ctx, req.UserID, bonus.UpdateBonusRequest{
				ID:     found.ID,
				Amount: &amount,
				Note:   &note,
			})
			if err != nil {
				r.recordFailure(&result, req.UserID, driverID, found.ID, bonus.ActionUpdated, err)
				continue
			}
			result.Updated++
			found.Amount = amount
			found.Note = note
			r.publish(ctx, bonus.ActionUpdated, found)

		default:
			result.Unchanged++
		}
	}

	for _, b := range stale {
		driverID := ""
		if b.DriverID != nil {
			driverID = *b.DriverID
		}
		if err := r.bonusRepo.Delete(ctx, b.ID, req.UserID); err != nil {
			r.recordFailure(&result, req.UserID, driverID, b.ID, bonus.ActionDeleted, err)
			continue
		}
		result.Deleted++
		r.publish(ctx, bonus.ActionDeleted, b)
	}

	if result.Changed() || len(result.Failures) > 0 {
		slog.Info("Automatic bonuses reconciled",
			"user_id", req.UserID,
			"week_start", result.WeekStart,
			"created", result.Created,
			"updated", result.Updated,
			"deleted", result.Deleted,
			"failed", len(result.Failures),
		)
	}

	return result, nil
}

func (r *Reconciler) recordFailure(result *bonus.ReconcileResult, userID, driverID, bonusID string, action bonus.ReconcileAction, err error) {
	slog.Error("Automatic bonus reconciliation step failed",
		"user_id", userID,
		"driver_id", driverID,
		"bonus_id", bonusID,
		"week_start", result.WeekStart,
		"action", action,
		"error", err,
	)
	result.Failures = append(result.Failures, bonus.ReconcileFailure{
		DriverID: driverID,
		BonusID:  bonusID,
		Action:   action,
		Error:    err.Error(),
	})
}

func (r *Reconciler) publish(ctx context.Context, action bonus.ReconcileAction, b bonus.Bonus) {
	if r.publisher == nil {
		return
	}

	event := bonus.BonusEvent{
		Action:    action,
		UserID:    b.UserID,
		BonusID:   b.ID,
		WeekStart: payroll.FormatDate(b.WeekStart),
		Amount:    b.Amount,
		At:        r.now(),
	}
	if b.DriverID != nil {
		event.DriverID = *b.DriverID
	}

	if err := r.publisher.PublishBonusEvent(ctx, event); err != nil {
		slog.Warn("Failed to publish bonus event", "routing_key", event.RoutingKey(), "bonus_id", b.ID, "error", err)
	}
}

func automaticNote(perf payroll.DriverPerformance) string {
	return fmt.Sprintf("Weekly gross $%s (%s) reached the $%s tier",
		perf.TotalGross.StringFixed(2),
		driver.DriverType(perf.DriverType).Label(),
		perf.Threshold.StringFixed(0),
	)
}
