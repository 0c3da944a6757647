package vehicle

import (
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"
)

func validateBase(req *vehicle.BaseVehicleRequest) error {
	if !req.Price.IsPositive() {
		return xerrors.Invalid("price must be greater than zero")
	}
	return nil
}

func validateUpdate(req *vehicle.UpdateVehicleRequest) error {
	if req.Price != nil && !req.Price.IsPositive() {
		return xerrors.Invalid("price must be greater than zero")
	}
	if req.Status != nil && !req.Status.Valid() {
		return xerrors.Invalid("status %q is not a vehicle status", *req.Status)
	}
	return nil
}

func validateFilters(f *vehicle.ListFilters) error {
	if f == nil {
		return nil
	}
	if f.Status != nil && !f.Status.Valid() {
		return xerrors.Invalid("status %q is not a vehicle status", *f.Status)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return xerrors.Invalid("min_price cannot exceed max_price")
	}
	return nil
}
