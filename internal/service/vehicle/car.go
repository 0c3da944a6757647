// internal/service/vehicle/car.go
package vehicle

import (
	"context"
	"errors"
	"fmt"

	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type CarService struct {
	repo   vehicle.CarRepository
	files  FileRemover
	logger *zap.Logger
}

func NewCarService(repo vehicle.CarRepository, files FileRemover, logger *zap.Logger) *CarService {
	return &CarService{repo: repo, files: files, logger: logger}
}

func (s *CarService) Create(ctx context.Context, req *vehicle.CreateCarRequest) (*vehicle.CarInfo, error) {
	if err := validateBase(&req.BaseVehicleRequest); err != nil {
		return nil, err
	}

	car := &vehicle.Car{
		Bodywork:     req.Bodywork,
		Transmission: req.Transmission,
		MotorVehicle: req.Base(),
	}
	if err := s.repo.Create(ctx, car); err != nil {
		s.logger.Error("failed to create car", zap.Error(err))
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	s.logger.Info("car created", zap.Int64("vehicle_id", car.VehicleID), zap.String("model", car.MotorVehicle.Model))
	info := car.Info()
	return &info, nil
}

func (s *CarService) Get(ctx context.Context, id int64) (*vehicle.CarInfo, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := car.Info()
	return &info, nil
}

func (s *CarService) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.CarInfo, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	cars, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	out := make([]vehicle.CarInfo, len(cars))
	for i := range cars {
		out[i] = cars[i].Info()
	}
	return out, nil
}

func (s *CarService) Update(ctx context.Context, id int64, req *vehicle.UpdateCarRequest) (*vehicle.CarInfo, error) {
	if err := validateUpdate(&req.UpdateVehicleRequest); err != nil {
		return nil, err
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(&car.MotorVehicle)
	if req.Bodywork != nil {
		car.Bodywork = *req.Bodywork
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	info := car.Info()
	return &info, nil
}

func (s *CarService) Delete(ctx context.Context, id int64) error {
	files, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	removeFiles(s.files, files)
	s.logger.Info("car deleted", zap.Int64("vehicle_id", id), zap.Int("image_files", len(files)))
	return nil
}

// SetStatus backs the activate and inactivate routes
func (s *CarService) SetStatus(ctx context.Context, id int64, status vehicle.Status) (*vehicle.CarInfo, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not a vehicle status", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateVehicleStatus reports false when id is not a car.
func (s *CarService) UpdateVehicleStatus(ctx context.Context, id int64, status vehicle.Status) (bool, error) {
	return found(s.repo.UpdateStatus(ctx, id, status))
}

// Exists reports whether id is a car
func (s *CarService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	return found(err)
}

func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, xerrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
