// internal/repository/gormrepo/image_repo.go
package gormrepo

import (
	"context"

	"carsales-service/internal/domain/image"
	xerrors "carsales-service/internal/pkg/errors"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) FindByID(ctx context.Context, id int64) (*image.VehicleImage, error) {
	var img image.VehicleImage
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, translate(err)
	}
	return &img, nil
}

func (r *ImageRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]image.VehicleImage, error) {
	return listByVehicle(r.db.WithContext(ctx), vehicleID)
}

func listByVehicle(tx *gorm.DB, vehicleID int64) ([]image.VehicleImage, error) {
	var list []image.VehicleImage
	err := tx.Where("vehicle_id = ?", vehicleID).Order("position ASC").Order("id ASC").Find(&list).Error
	return list, translate(err)
}

func (r *ImageRepository) FindPrimary(ctx context.Context, vehicleID int64) (*image.VehicleImage, error) {
	var img image.VehicleImage
	err := r.db.WithContext(ctx).Where("vehicle_id = ? AND is_primary = ?", vehicleID, true).First(&img).Error
	if err != nil {
		return nil, translate(err)
	}
	return &img, nil
}

func (r *ImageRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	return countByVehicle(r.db.WithContext(ctx), vehicleID)
}

func countByVehicle(tx *gorm.DB, vehicleID int64) (int64, error) {
	var n int64
	err := tx.Model(&image.VehicleImage{}).Where("vehicle_id = ?", vehicleID).Count(&n).Error
	return n, translate(err)
}

func (r *ImageRepository) CreateBatch(ctx context.Context, vehicleID int64, images []*image.VehicleImage, guard image.CountGuard) error {
	if len(images) == 0 {
		return nil
	}
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		current, err := countByVehicle(tx, vehicleID)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(current); err != nil {
				return err
			}
		}

		var primaries int64
		if err := tx.Model(&image.VehicleImage{}).
			Where("vehicle_id = ? AND is_primary = ?", vehicleID, true).
			Count(&primaries).Error; err != nil {
			return err
		}

		for i, img := range images {
			img.VehicleID = vehicleID
			img.Position = int(current) + i + 1
			img.IsPrimary = primaries == 0 && i == 0
		}
		return tx.Create(images).Error
	}))
}

func (r *ImageRepository) DeleteAndCompact(ctx context.Context, imageID int64, guard image.CountGuard) (*image.VehicleImage, error) {
	var deleted image.VehicleImage
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.First(&deleted, imageID).Error; err != nil {
			return err
		}
		current, err := countByVehicle(tx, deleted.VehicleID)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(current); err != nil {
				return err
			}
		}
		if err := tx.Delete(&image.VehicleImage{}, imageID).Error; err != nil {
			return err
		}

		rest, err := listByVehicle(tx, deleted.VehicleID)
		if err != nil {
			return err
		}
		for i := range rest {
			updates := map[string]interface{}{}
			if rest[i].Position != i+1 {
				updates["position"] = i + 1
			}
			if deleted.IsPrimary && i == 0 {
				updates["is_primary"] = true
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(&rest[i]).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &deleted, nil
}

func (r *ImageRepository) SetPrimary(ctx context.Context, vehicleID, imageID int64) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := belongsTo(tx, vehicleID, imageID); err != nil {
			return err
		}
		if err := tx.Model(&image.VehicleImage{}).
			Where("vehicle_id = ?", vehicleID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&image.VehicleImage{}).Where("id = ?", imageID).Update("is_primary", true).Error
	}))
}

// Reorder applies the requested positions and rejects any result that is not
// exactly 1..N.
func (r *ImageRepository) Reorder(ctx context.Context, vehicleID int64, items []image.ReorderItem) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, it := range items {
			if err := belongsTo(tx, vehicleID, it.ImageID); err != nil {
				return err
			}
			if err := tx.Model(&image.VehicleImage{}).
				Where("id = ?", it.ImageID).
				Update("position", it.Position).Error; err != nil {
				return err
			}
		}

		list, err := listByVehicle(tx, vehicleID)
		if err != nil {
			return err
		}
		for i, img := range list {
			if img.Position != i+1 {
				return xerrors.Invalid("positions must cover 1..%d without gaps or repeats", len(list))
			}
		}
		return nil
	}))
}

func belongsTo(tx *gorm.DB, vehicleID, imageID int64) error {
	var n int64
	if err := tx.Model(&image.VehicleImage{}).
		Where("id = ? AND vehicle_id = ?", imageID, vehicleID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
