// internal/domain/vehicle/repository.go
package vehicle

import "context"

// CarRepository persists cars together with their base record
type CarRepository interface {
	Create(ctx context.Context, car *Car) error
	FindByID(ctx context.Context, id int64) (*Car, error)
	List(ctx context.Context, filters *ListFilters) ([]Car, error)
	Update(ctx context.Context, car *Car) error
	// Delete removes the car, its base record and its image rows, returning
	// the image files to remove once the delete is committed.
	Delete(ctx context.Context, id int64) ([]string, error)
	// UpdateStatus returns ErrNotFound when id is not a car
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// MotorcycleRepository persists motorcycles together with their base record
type MotorcycleRepository interface {
	Create(ctx context.Context, m *Motorcycle) error
	FindByID(ctx context.Context, id int64) (*Motorcycle, error)
	List(ctx context.Context, filters *ListFilters) ([]Motorcycle, error)
	Update(ctx context.Context, m *Motorcycle) error
	Delete(ctx context.Context, id int64) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
