// internal/domain/image/repository.go
package image

import "context"

// CountGuard runs inside the write transaction with the vehicle's current
// image count and aborts it by returning an error.
type CountGuard func(current int64) error

type Repository interface {
	FindByID(ctx context.Context, id int64) (*VehicleImage, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]VehicleImage, error)
	FindPrimary(ctx context.Context, vehicleID int64) (*VehicleImage, error)
	CountByVehicle(ctx context.Context, vehicleID int64) (int64, error)

	// CreateBatch appends images after the current last position, marking the
	// first one primary when the vehicle had none.
	CreateBatch(ctx context.Context, vehicleID int64, images []*VehicleImage, guard CountGuard) error
	// DeleteAndCompact removes the image, renumbers the rest 1..N and promotes
	// position 1 when the deleted image was primary.
	DeleteAndCompact(ctx context.Context, imageID int64, guard CountGuard) (*VehicleImage, error)
	SetPrimary(ctx context.Context, vehicleID, imageID int64) error
	Reorder(ctx context.Context, vehicleID int64, items []ReorderItem) error
}
