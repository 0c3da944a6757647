package vehicle

import (
	"context"

	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"
)

// Catalog answers questions that span both variants.
type Catalog struct {
	cars  *CarService
	motos *MotorcycleService
}

func NewCatalog(cars *CarService, motos *MotorcycleService) *Catalog {
	return &Catalog{cars: cars, motos: motos}
}

// Exists checks that id is a vehicle of the given type
func (c *Catalog) Exists(ctx context.Context, t vehicle.Type, id int64) (bool, error) {
	switch t {
	case vehicle.TypeCar:
		return c.cars.Exists(ctx, id)
	case vehicle.TypeMotorcycle:
		return c.motos.Exists(ctx, id)
	default:
		return false, xerrors.Invalid("vehicle type must be %q or %q", vehicle.TypeCar, vehicle.TypeMotorcycle)
	}
}

// ExistsAny checks that id is a vehicle of either type
func (c *Catalog) ExistsAny(ctx context.Context, id int64) (bool, error) {
	ok, err := c.cars.Exists(ctx, id)
	if err != nil || ok {
		return ok, err
	}
	return c.motos.Exists(ctx, id)
}

// Updaters lists the status updaters in the order a cascade should try them
func (c *Catalog) Updaters() []StatusUpdater {
	return []StatusUpdater{c.cars, c.motos}
}

// StatusUpdater sets the status of one vehicle variant. It reports false
// when the id belongs to another variant.
type StatusUpdater interface {
	UpdateVehicleStatus(ctx context.Context, id int64, status vehicle.Status) (bool, error)
}

// FileRemover deletes stored image files; storage.LocalStore satisfies it.
type FileRemover interface {
	Remove(paths ...string)
}

func removeFiles(files FileRemover, paths []string) {
	if files == nil || len(paths) == 0 {
		return
	}
	files.Remove(paths...)
}
