package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	payrollService "github.com/Jimmy4745/lovable-dispatch/internal/service/payroll"
)

type BonusServiceImpl struct {
	bonusRepo  bonus.BonusRepository
	loadRepo   load.LoadRepository
	driverRepo driver.DriverRepository
	reconciler bonus.Reconciler
}

func NewBonusService(
	bonusRepo bonus.BonusRepository,
	loadRepo load.LoadRepository,
	driverRepo driver.DriverRepository,
	reconciler bonus.Reconciler,
) bonus.BonusService {
	return &BonusServiceImpl{
		bonusRepo:  bonusRepo,
		loadRepo:   loadRepo,
		driverRepo: driverRepo,
		reconciler: reconciler,
	}
}

func (s *BonusServiceImpl) List(ctx context.Context, sel payroll.PeriodSelection) ([]bonus.BonusResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	period := payrollService.ResolvePeriod(sel)
	bonuses, err := s.bonusRepo.ListByDateRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	result := make([]bonus.BonusResponse, 0, len(bonuses))
	for _, b := range bonuses {
		result = append(result, bonus.ToResponse(b))
	}
	return result, nil
}

// Create records a manual bonus. The week is aligned to its Monday.
func (s *BonusServiceImpl) Create(ctx context.Context, req bonus.CreateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return bonus.BonusResponse{}, err
	}

	if req.DriverID != nil && *req.DriverID == "" {
		req.DriverID = nil
	}
	if req.DriverID != nil {
		if _, err := s.driverRepo.GetByID(ctx, *req.DriverID, userID); err != nil {
			return bonus.BonusResponse{}, err
		}
	}

	weekStart, _ := time.Parse(payroll.DateLayout, req.WeekStart)
	date, _ := time.Parse(payroll.DateLayout, req.Date)

	created, err := s.bonusRepo.Create(ctx, bonus.Bonus{
		UserID:    userID,
		DriverID:  req.DriverID,
		Type:      bonus.BonusTypeManual,
		Amount:    req.Amount,
		WeekStart: payrollService.WeekStart(weekStart),
		Date:      date,
		Note:      req.Note,
	})
	if err != nil {
		return bonus.BonusResponse{}, err
	}

	return bonus.ToResponse(created), nil
}

// Update edits a manual bonus. Automatic bonuses belong to the reconciler.
func (s *BonusServiceImpl) Update(ctx context.Context, req bonus.UpdateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return bonus.BonusResponse{}, err
	}

	existing, err := s.bonusRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return bonus.BonusResponse{}, err
	}
	if existing.IsAutomatic() {
		return bonus.BonusResponse{}, bonus.ErrAutomaticBonusReadOnly
	}

	// An empty driver id is passed through and clears the driver.
	if req.DriverID != nil && *req.DriverID != "" {
		if _, err := s.driverRepo.GetByID(ctx, *req.DriverID, userID); err != nil {
			return bonus.BonusResponse{}, err
		}
	}

	if req.WeekStart != nil {
		weekStart, _ := time.Parse(payroll.DateLayout, *req.WeekStart)
		aligned := payroll.FormatDate(payrollService.WeekStart(weekStart))
		req.WeekStart = &aligned
	}

	if err := s.bonusRepo.Update(ctx, userID, req); err != nil {
		return bonus.BonusResponse{}, err
	}

	return bonus.ToResponse(req.Apply(existing)), nil
}

// Delete removes a bonus of either type. A deleted automatic bonus comes back
// on the next pass while the driver stays eligible.
func (s *BonusServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.bonusRepo.Delete(ctx, id, userID)
}

func (s *BonusServiceImpl) Reconcile(ctx context.Context, sel payroll.PeriodSelection) (bonus.ReconcileResult, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return bonus.ReconcileResult{}, err
	}

	return ReconcileOwner(ctx, s.reconciler, s.loadRepo, s.driverRepo, userID, payrollService.ResolvePeriod(sel).Start)
}

// ReconcileOwner reads the owner's current loads and drivers and runs a pass
// for the week containing periodStart.
func ReconcileOwner(
	ctx context.Context,
	reconciler bonus.Reconciler,
	loadRepo load.LoadRepository,
	driverRepo driver.DriverRepository,
	userID string,
	periodStart time.Time,
) (bonus.ReconcileResult, error) {
	loads, err := loadRepo.List(ctx, userID)
	if err != nil {
		return bonus.ReconcileResult{}, fmt.Errorf("failed to list loads: %w", err)
	}
	drivers, err := driverRepo.List(ctx, userID)
	if err != nil {
		return bonus.ReconcileResult{}, fmt.Errorf("failed to list drivers: %w", err)
	}

	return reconciler.Reconcile(ctx, bonus.ReconcileRequest{
		UserID:      userID,
		PeriodStart: periodStart,
		Loads:       loads,
		Drivers:     drivers,
	})
}
