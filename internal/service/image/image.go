// internal/service/image/image.go
package image

import (
	"context"
	"errors"
	"fmt"

	"carsales-service/internal/domain/image"
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleChecker confirms that a vehicle of the given type exists
type VehicleChecker interface {
	Exists(ctx context.Context, t vehicle.Type, id int64) (bool, error)
}

type ImageService struct {
	repo     image.Repository
	vehicles VehicleChecker
	store    *storage.LocalStore
	logger   *zap.Logger
}

func NewImageService(repo image.Repository, vehicles VehicleChecker, store *storage.LocalStore, logger *zap.Logger) *ImageService {
	return &ImageService{repo: repo, vehicles: vehicles, store: store, logger: logger}
}

// Upload validates every file before writing any of them, then stores the
// files and inserts all rows in one transaction.
func (s *ImageService) Upload(ctx context.Context, vehicleType vehicle.Type, vehicleID int64, files []image.Upload) (*image.UploadResponse, error) {
	if !vehicleType.Valid() {
		return nil, xerrors.Invalid("vehicle type must be %q or %q", vehicle.TypeCar, vehicle.TypeMotorcycle)
	}
	if len(files) == 0 {
		return nil, xerrors.Invalid("at least one file is required")
	}

	ok, err := s.vehicles.Exists(ctx, vehicleType, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", xerrors.ErrNotFound, vehicleType, vehicleID)
	}

	exts := make([]string, len(files))
	for i, f := range files {
		ext, allowed := image.ExtensionAllowed(f.Filename)
		if !allowed {
			return nil, xerrors.Invalid("file %q: only .jpg, .jpeg, .png and .webp are accepted", f.Filename)
		}
		if f.Size > image.MaxFileSize {
			return nil, xerrors.Invalid("file %q exceeds the 10MB limit", f.Filename)
		}
		exts[i] = ext
	}

	guard := capacityGuard(len(files))
	current, err := s.repo.CountByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count images: %w", err)
	}
	if err := guard(current); err != nil {
		return nil, err
	}

	var written []string
	records := make([]*image.VehicleImage, 0, len(files))
	for i, f := range files {
		rec, paths, err := s.storeOne(vehicleType, vehicleID, f, exts[i])
		written = append(written, paths...)
		if err != nil {
			s.store.Remove(written...)
			return nil, err
		}
		records = append(records, rec)
	}

	if err := s.repo.CreateBatch(ctx, vehicleID, records, guard); err != nil {
		s.store.Remove(written...)
		return nil, fmt.Errorf("failed to save images: %w", err)
	}

	s.logger.Info("images uploaded",
		zap.String("vehicle_type", string(vehicleType)),
		zap.Int64("vehicle_id", vehicleID),
		zap.Int("count", len(records)),
	)

	out := make([]image.VehicleImage, len(records))
	for i, r := range records {
		out[i] = *r
	}
	return &image.UploadResponse{Images: out, TotalCount: int(current) + len(out)}, nil
}

// storeOne writes the file and its thumbnail. A thumbnail failure is logged
// and leaves the record without one.
func (s *ImageService) storeOne(vehicleType vehicle.Type, vehicleID int64, f image.Upload, ext string) (*image.VehicleImage, []string, error) {
	name := uuid.NewString() + ext
	obj, err := s.store.Save(string(vehicleType), vehicleID, name, f.Content, image.MaxFileSize)
	if errors.Is(err, storage.ErrTooLarge) {
		return nil, nil, xerrors.Invalid("file %q exceeds the 10MB limit", f.Filename)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store %q: %w", f.Filename, err)
	}
	paths := []string{obj.Path}

	rec := &image.VehicleImage{
		VehicleType:  string(vehicleType),
		Filename:     name,
		OriginalName: f.Filename,
		FilePath:     obj.Path,
		URL:          obj.URL,
		FileSize:     obj.Size,
		ContentType:  f.ContentType,
	}

	thumb, err := s.store.Thumbnail(obj, string(vehicleType), vehicleID, name, storage.ThumbnailOptions{
		Size:    image.ThumbnailSize,
		Quality: image.ThumbnailQuality,
		Prefix:  image.ThumbnailPrefix,
	})
	if err != nil {
		s.logger.Warn("thumbnail generation failed", zap.String("file", name), zap.Error(err))
		return rec, paths, nil
	}
	rec.ThumbnailPath = thumb.Path
	rec.ThumbnailURL = thumb.URL
	return rec, append(paths, thumb.Path), nil
}

func capacityGuard(adding int) image.CountGuard {
	return func(current int64) error {
		if current+int64(adding) > image.MaxImagesPerVehicle {
			return xerrors.Invalid("a vehicle can have at most %d images; it has %d and %d were sent",
				image.MaxImagesPerVehicle, current, adding)
		}
		return nil
	}
}

func (s *ImageService) ListByVehicle(ctx context.Context, vehicleID int64) ([]image.VehicleImage, error) {
	list, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if list == nil {
		list = []image.VehicleImage{}
	}
	return list, nil
}

func (s *ImageService) Get(ctx context.Context, id int64) (*image.VehicleImage, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ImageService) Primary(ctx context.Context, vehicleID int64) (*image.VehicleImage, error) {
	return s.repo.FindPrimary(ctx, vehicleID)
}

// Delete refuses to remove a vehicle's last image. Files are removed after
// the rows are committed.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteAndCompact(ctx, id, func(current int64) error {
		if current <= image.MinImagesPerVehicle {
			return xerrors.Invalid("a vehicle must keep at least %d image", image.MinImagesPerVehicle)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.store.Remove(deleted.FilePath, deleted.ThumbnailPath)
	s.logger.Info("image deleted",
		zap.Int64("image_id", id),
		zap.Int64("vehicle_id", deleted.VehicleID),
		zap.Bool("was_primary", deleted.IsPrimary),
	)
	return nil
}

func (s *ImageService) SetPrimary(ctx context.Context, vehicleID, imageID int64) error {
	return s.repo.SetPrimary(ctx, vehicleID, imageID)
}

// Reorder requires positions in 1..10 with no repeats within the request.
// The repository rejects any result that is not a dense 1..N.
func (s *ImageService) Reorder(ctx context.Context, vehicleID int64, items []image.ReorderItem) error {
	if len(items) == 0 {
		return xerrors.Invalid("at least one position is required")
	}
	positions := make(map[int]bool, len(items))
	ids := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Position < 1 || it.Position > image.MaxImagesPerVehicle {
			return xerrors.Invalid("position must be between 1 and %d", image.MaxImagesPerVehicle)
		}
		if positions[it.Position] {
			return xerrors.Invalid("position %d is assigned twice", it.Position)
		}
		if ids[it.ImageID] {
			return xerrors.Invalid("image %d appears twice", it.ImageID)
		}
		positions[it.Position], ids[it.ImageID] = true, true
	}
	return s.repo.Reorder(ctx, vehicleID, items)
}
