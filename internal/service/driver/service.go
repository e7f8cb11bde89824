package driver

import (
	"context"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
)

type DriverServiceImpl struct {
	driverRepo driver.DriverRepository
}

func NewDriverService(driverRepo driver.DriverRepository) driver.DriverService {
	return &DriverServiceImpl{driverRepo: driverRepo}
}

func (s *DriverServiceImpl) List(ctx context.Context) ([]driver.DriverResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	drivers, err := s.driverRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]driver.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		result = append(result, driver.ToResponse(d))
	}
	return result, nil
}

func (s *DriverServiceImpl) Get(ctx context.Context, id string) (driver.DriverResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return driver.DriverResponse{}, err
	}

	d, err := s.driverRepo.GetByID(ctx, id, userID)
	if err != nil {
		return driver.DriverResponse{}, err
	}
	return driver.ToResponse(d), nil
}

func (s *DriverServiceImpl) Create(ctx context.Context, req driver.CreateDriverRequest) (driver.DriverResponse, error) {
	if err := req.Validate(); err != nil {
		return driver.DriverResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return driver.DriverResponse{}, err
	}

	created, err := s.driverRepo.Create(ctx, driver.Driver{
		UserID:      userID,
		Name:        req.Name,
		Type:        driver.DriverType(req.Type),
		TruckNumber: req.TruckNumber,
		Status:      driver.Status(req.Status),
	})
	if err != nil {
		return driver.DriverResponse{}, err
	}
	return driver.ToResponse(created), nil
}

func (s *DriverServiceImpl) Update(ctx context.Context, req driver.UpdateDriverRequest) (driver.DriverResponse, error) {
	if err := req.Validate(); err != nil {
		return driver.DriverResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return driver.DriverResponse{}, err
	}

	if err := s.driverRepo.Update(ctx, userID, req); err != nil {
		return driver.DriverResponse{}, err
	}

	updated, err := s.driverRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return driver.DriverResponse{}, err
	}
	return driver.ToResponse(updated), nil
}

func (s *DriverServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.driverRepo.Delete(ctx, id, userID)
}
