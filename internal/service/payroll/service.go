package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	driverRepo driver.DriverRepository
	loadRepo   load.LoadRepository
	bonusRepo  bonus.BonusRepository
	now        func() time.Time
}

func NewPayrollService(
	driverRepo driver.DriverRepository,
	loadRepo load.LoadRepository,
	bonusRepo bonus.BonusRepository,
	now func() time.Time,
) payroll.PayrollService {
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		driverRepo: driverRepo,
		loadRepo:   loadRepo,
		bonusRepo:  bonusRepo,
		now:        now,
	}
}

func (s *PayrollServiceImpl) GetDashboard(ctx context.Context, sel payroll.PeriodSelection) (payroll.DashboardResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return payroll.DashboardResponse{}, err
	}

	period := ResolvePeriod(sel)
	if period.End.Before(period.Start) {
		return payroll.DashboardResponse{}, payroll.ErrInvalidPeriod
	}

	var (
		drivers []driver.Driver
		loads   []load.Load
		bonuses []bonus.Bonus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drivers, err = s.driverRepo.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list drivers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		loads, err = s.loadRepo.ListByPickupRange(gctx, userID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to list loads: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bonuses, err = s.bonusRepo.ListByDateRange(gctx, userID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to list bonuses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.DashboardResponse{}, err
	}

	metrics := AggregateRevenue(loads, period)

	return payroll.DashboardResponse{
		Period:            payroll.ToPeriodResponse(period),
		Metrics:           metrics,
		Summary:           Summarize(metrics, bonuses, period),
		DriverPerformance: DriverPerformance(drivers, loads, period),
		CalculatedAt:      s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *PayrollServiceImpl) GetWeeklyGross(ctx context.Context, week time.Time) (payroll.WeeklyGrossResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return payroll.WeeklyGrossResponse{}, err
	}

	period := CalendarWeek(week)

	var (
		drivers []driver.Driver
		loads   []load.Load
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drivers, err = s.driverRepo.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list drivers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		loads, err = s.loadRepo.ListByPickupRange(gctx, userID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to list loads: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.WeeklyGrossResponse{}, err
	}

	return payroll.WeeklyGrossResponse{
		WeekStart: payroll.FormatDate(period.Start),
		WeekEnd:   payroll.FormatDate(period.End),
		Rows:      WeeklyGross(drivers, loads, period.Start),
	}, nil
}
