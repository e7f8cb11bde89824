package load

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	bonusService "github.com/Jimmy4745/lovable-dispatch/internal/service/bonus"
	payrollService "github.com/Jimmy4745/lovable-dispatch/internal/service/payroll"
)

type LoadServiceImpl struct {
	loadRepo   load.LoadRepository
	driverRepo driver.DriverRepository
	reconciler bonus.Reconciler
	tx         database.Transactor
}

func NewLoadService(
	loadRepo load.LoadRepository,
	driverRepo driver.DriverRepository,
	reconciler bonus.Reconciler,
	tx database.Transactor,
) load.LoadService {
	return &LoadServiceImpl{
		loadRepo:   loadRepo,
		driverRepo: driverRepo,
		reconciler: reconciler,
		tx:         tx,
	}
}

func (s *LoadServiceImpl) List(ctx context.Context, filter load.LoadFilter) ([]load.LoadResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var loads []load.Load
	if filter.PickupFrom != nil && filter.PickupTo != nil {
		loads, err = s.loadRepo.ListByPickupRange(ctx, userID, *filter.PickupFrom, *filter.PickupTo)
	} else {
		loads, err = s.loadRepo.List(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]load.LoadResponse, 0, len(loads))
	for _, l := range loads {
		day := payroll.Date(l.PickupDate)
		if filter.PickupFrom != nil && day.Before(payroll.Date(*filter.PickupFrom)) {
			continue
		}
		if filter.PickupTo != nil && day.After(payroll.Date(*filter.PickupTo)) {
			continue
		}
		result = append(result, load.ToResponse(l))
	}
	return result, nil
}

func (s *LoadServiceImpl) Get(ctx context.Context, id string) (load.LoadResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return load.LoadResponse{}, err
	}

	l, err := s.loadRepo.GetByID(ctx, id, userID)
	if err != nil {
		return load.LoadResponse{}, err
	}
	return load.ToResponse(l), nil
}

func (s *LoadServiceImpl) LoadIDExists(ctx context.Context, loadID string) (bool, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return false, err
	}
	return s.loadRepo.ExistsByLoadID(ctx, userID, loadID, nil)
}

func (s *LoadServiceImpl) ListFullLoads(ctx context.Context) ([]load.LoadResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loads, err := s.loadRepo.ListByType(ctx, userID, load.LoadTypeFull)
	if err != nil {
		return nil, err
	}
	return load.ToResponses(loads), nil
}

func (s *LoadServiceImpl) Create(ctx context.Context, req load.CreateLoadRequest, sel payroll.PeriodSelection) (load.LoadResponse, error) {
	if err := req.Validate(); err != nil {
		return load.LoadResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return load.LoadResponse{}, err
	}

	exists, err := s.loadRepo.ExistsByLoadID(ctx, userID, req.LoadID, nil)
	if err != nil {
		return load.LoadResponse{}, err
	}
	if exists {
		return load.LoadResponse{}, load.ErrLoadIDExists
	}

	loadType := load.LoadType(req.LoadType)
	parent := normalize(req.ParentLoadID)
	if err := s.checkParent(ctx, userID, loadType, parent, ""); err != nil {
		return load.LoadResponse{}, err
	}

	driverID := normalize(req.DriverID)
	if err := s.checkDriver(ctx, userID, driverID); err != nil {
		return load.LoadResponse{}, err
	}

	pickup, _ := time.Parse(payroll.DateLayout, req.PickupDate)
	delivery, _ := time.Parse(payroll.DateLayout, req.DeliveryDate)

	created, err := s.loadRepo.Create(ctx, load.Load{
		UserID:       userID,
		LoadID:       req.LoadID,
		PickupDate:   pickup,
		DeliveryDate: delivery,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Rate:         req.Rate,
		Type:         loadType,
		DriverID:     driverID,
		ParentLoadID: parent,
	})
	if err != nil {
		return load.LoadResponse{}, err
	}

	s.reconcile(ctx, userID, sel)
	return load.ToResponse(created), nil
}

// Update applies a partial update. Renaming a FULL load carries its partials
// along; a FULL load with partials cannot become PARTIAL.
func (s *LoadServiceImpl) Update(ctx context.Context, req load.UpdateLoadRequest, sel payroll.PeriodSelection) (load.LoadResponse, error) {
	if err := req.Validate(); err != nil {
		return load.LoadResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return load.LoadResponse{}, err
	}

	existing, err := s.loadRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return load.LoadResponse{}, err
	}

	if req.ParentLoadID != nil && *req.ParentLoadID == "" {
		req.ParentLoadID = nil
		req.ClearParent = true
	}
	updated := req.Apply(existing)

	if updated.DeliveryDate.Before(updated.PickupDate) {
		return load.LoadResponse{}, load.ErrDeliveryBeforePickup
	}

	renamed := updated.LoadID != existing.LoadID
	if renamed {
		exists, err := s.loadRepo.ExistsByLoadID(ctx, userID, updated.LoadID, &existing.ID)
		if err != nil {
			return load.LoadResponse{}, err
		}
		if exists {
			return load.LoadResponse{}, load.ErrLoadIDExists
		}
	}

	if updated.IsFull() {
		if req.ParentLoadID != nil {
			return load.LoadResponse{}, load.ErrParentNotAllowed
		}
		if existing.ParentLoadID != nil {
			req.ClearParent = true
		}
	} else {
		if err := s.checkParent(ctx, userID, updated.Type, updated.ParentLoadID, existing.LoadID); err != nil {
			return load.LoadResponse{}, err
		}
		if existing.IsFull() {
			if err := s.checkNoPartials(ctx, userID, existing.LoadID); err != nil {
				return load.LoadResponse{}, err
			}
		}
	}

	if req.DriverID != nil {
		if err := s.checkDriver(ctx, userID, normalize(req.DriverID)); err != nil {
			return load.LoadResponse{}, err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.loadRepo.Update(txCtx, userID, req); err != nil {
			return err
		}
		if renamed && existing.IsFull() {
			return s.loadRepo.RenameParent(txCtx, userID, existing.LoadID, updated.LoadID)
		}
		return nil
	})
	if err != nil {
		return load.LoadResponse{}, err
	}

	stored, err := s.loadRepo.GetByID(ctx, existing.ID, userID)
	if err != nil {
		return load.LoadResponse{}, err
	}

	s.reconcile(ctx, userID, sel)
	return load.ToResponse(stored), nil
}

func (s *LoadServiceImpl) Delete(ctx context.Context, id string, sel payroll.PeriodSelection) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.loadRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if existing.IsFull() {
		if err := s.checkNoPartials(ctx, userID, existing.LoadID); err != nil {
			return err
		}
	}

	if err := s.loadRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.reconcile(ctx, userID, sel)
	return nil
}

// checkParent enforces the parent rules: a PARTIAL references an existing FULL
// load other than itself, a FULL references nothing.
func (s *LoadServiceImpl) checkParent(ctx context.Context, userID string, loadType load.LoadType, parent *string, self string) error {
	if loadType == load.LoadTypeFull {
		if parent != nil {
			return load.ErrParentNotAllowed
		}
		return nil
	}

	if parent == nil {
		return load.ErrParentRequired
	}
	if self != "" && *parent == self {
		return load.ErrParentNotFull
	}

	p, err := s.loadRepo.GetByLoadID(ctx, userID, *parent)
	if err != nil {
		if errors.Is(err, load.ErrLoadNotFound) {
			return load.ErrParentNotFound
		}
		return err
	}
	if !p.IsFull() {
		return load.ErrParentNotFull
	}
	return nil
}

func (s *LoadServiceImpl) checkNoPartials(ctx context.Context, userID string, loadID string) error {
	count, err := s.loadRepo.CountPartials(ctx, userID, loadID)
	if err != nil {
		return err
	}
	if count > 0 {
		return load.ErrLoadHasPartials
	}
	return nil
}

func (s *LoadServiceImpl) checkDriver(ctx context.Context, userID string, driverID *string) error {
	if driverID == nil {
		return nil
	}
	_, err := s.driverRepo.GetByID(ctx, *driverID, userID)
	return err
}

// reconcile runs the automatic bonus pass against the collection as it is
// after the mutation. A failed pass never fails the mutation.
func (s *LoadServiceImpl) reconcile(ctx context.Context, userID string, sel payroll.PeriodSelection) {
	periodStart := payrollService.ResolvePeriod(sel).Start
	_, err := bonusService.ReconcileOwner(ctx, s.reconciler, s.loadRepo, s.driverRepo, userID, periodStart)
	if err != nil {
		slog.Error("Failed to reconcile automatic bonuses after load change",
			"user_id", userID,
			"period_start", payroll.FormatDate(periodStart),
			"error", err,
		)
	}
}

func normalize(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
