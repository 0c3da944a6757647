// internal/service/vehicle/motorcycle.go
package vehicle

import (
	"context"
	"fmt"

	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type MotorcycleService struct {
	repo   vehicle.MotorcycleRepository
	files  FileRemover
	logger *zap.Logger
}

func NewMotorcycleService(repo vehicle.MotorcycleRepository, files FileRemover, logger *zap.Logger) *MotorcycleService {
	return &MotorcycleService{repo: repo, files: files, logger: logger}
}

func (s *MotorcycleService) Create(ctx context.Context, req *vehicle.CreateMotorcycleRequest) (*vehicle.MotorcycleInfo, error) {
	if err := validateBase(&req.BaseVehicleRequest); err != nil {
		return nil, err
	}

	m := &vehicle.Motorcycle{
		Starter:            req.Starter,
		FuelSystem:         req.FuelSystem,
		EngineDisplacement: req.EngineDisplacement,
		Cooling:            req.Cooling,
		Style:              req.Style,
		EngineType:         req.EngineType,
		Gears:              req.Gears,
		FrontRearBrake:     req.FrontRearBrake,
		MotorVehicle:       req.Base(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create motorcycle", zap.Error(err))
		return nil, fmt.Errorf("failed to create motorcycle: %w", err)
	}

	s.logger.Info("motorcycle created", zap.Int64("vehicle_id", m.VehicleID), zap.String("model", m.MotorVehicle.Model))
	info := m.Info()
	return &info, nil
}

func (s *MotorcycleService) Get(ctx context.Context, id int64) (*vehicle.MotorcycleInfo, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := m.Info()
	return &info, nil
}

func (s *MotorcycleService) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.MotorcycleInfo, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list motorcycles: %w", err)
	}
	out := make([]vehicle.MotorcycleInfo, len(list))
	for i := range list {
		out[i] = list[i].Info()
	}
	return out, nil
}

func (s *MotorcycleService) Update(ctx context.Context, id int64, req *vehicle.UpdateMotorcycleRequest) (*vehicle.MotorcycleInfo, error) {
	if err := validateUpdate(&req.UpdateVehicleRequest); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(&m.MotorVehicle)
	if req.Starter != nil {
		m.Starter = *req.Starter
	}
	if req.FuelSystem != nil {
		m.FuelSystem = *req.FuelSystem
	}
	if req.EngineDisplacement != nil {
		m.EngineDisplacement = *req.EngineDisplacement
	}
	if req.Cooling != nil {
		m.Cooling = *req.Cooling
	}
	if req.Style != nil {
		m.Style = *req.Style
	}
	if req.EngineType != nil {
		m.EngineType = *req.EngineType
	}
	if req.Gears != nil {
		m.Gears = *req.Gears
	}
	if req.FrontRearBrake != nil {
		m.FrontRearBrake = *req.FrontRearBrake
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update motorcycle: %w", err)
	}
	info := m.Info()
	return &info, nil
}

func (s *MotorcycleService) Delete(ctx context.Context, id int64) error {
	files, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	removeFiles(s.files, files)
	s.logger.Info("motorcycle deleted", zap.Int64("vehicle_id", id), zap.Int("image_files", len(files)))
	return nil
}

func (s *MotorcycleService) SetStatus(ctx context.Context, id int64, status vehicle.Status) (*vehicle.MotorcycleInfo, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not a vehicle status", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateVehicleStatus reports false when id is not a motorcycle.
func (s *MotorcycleService) UpdateVehicleStatus(ctx context.Context, id int64, status vehicle.Status) (bool, error) {
	return found(s.repo.UpdateStatus(ctx, id, status))
}

func (s *MotorcycleService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	return found(err)
}
