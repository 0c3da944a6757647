// internal/repository/gormrepo/vehicle_repo.go
package gormrepo

import (
	"context"

	"carsales-service/internal/domain/image"
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ========== shared base-record helpers ==========

func createBase(tx *gorm.DB, base *vehicle.MotorVehicle) error {
	if base.Status == "" {
		base.Status = vehicle.StatusActive
	}
	return tx.Create(base).Error
}

func updateBase(tx *gorm.DB, base *vehicle.MotorVehicle) error {
	return tx.Model(base).Select(
		"Model", "Year", "Mileage", "FuelType", "Color", "City",
		"Price", "AdditionalDescription", "Status",
	).Updates(base).Error
}

// variantQuery joins the extension table to its base rows and applies the
// catalog filters. Results are always ordered by price.
func variantQuery(db *gorm.DB, table string, filters *vehicle.ListFilters) *gorm.DB {
	q := db.Joins("MotorVehicle")
	if filters != nil {
		if filters.Status != nil {
			q = q.Where(clause.Eq{Column: baseColumn("status"), Value: *filters.Status})
		}
		if filters.MinPrice != nil {
			q = q.Where(clause.Gte{Column: baseColumn("price"), Value: *filters.MinPrice})
		}
		if filters.MaxPrice != nil {
			q = q.Where(clause.Lte{Column: baseColumn("price"), Value: *filters.MaxPrice})
		}
	}
	skip, limit := 0, defaultLimit
	if filters != nil {
		skip, limit = page(filters.Skip, filters.Limit)
	}
	return q.
		Order(clause.OrderByColumn{Column: baseColumn("price")}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "vehicle_id"}}).
		Offset(skip).Limit(limit)
}

// baseColumn addresses a motor_vehicles column through the join alias so the
// dialect quotes it.
func baseColumn(name string) clause.Column {
	return clause.Column{Table: "MotorVehicle", Name: name}
}

// setVariantStatus updates the base status only when id belongs to table
func setVariantStatus(ctx context.Context, db *gorm.DB, table string, id int64, status vehicle.Status) error {
	return withTx(ctx, db, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(table).Where("vehicle_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return xerrors.ErrNotFound
		}
		return affectedOrNotFound(tx.Model(&vehicle.MotorVehicle{}).Where("id = ?", id).Update("status", status))
	})
}

// deleteVariant drops the extension row, the vehicle's images and the base
// record together, and returns the image files left to clean up.
func deleteVariant(ctx context.Context, db *gorm.DB, model interface{}, id int64) ([]string, error) {
	var files []string
	err := withTx(ctx, db, func(tx *gorm.DB) error {
		if err := affectedOrNotFound(tx.Where("vehicle_id = ?", id).Delete(model)); err != nil {
			return err
		}

		var images []image.VehicleImage
		if err := tx.Where("vehicle_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&image.VehicleImage{}).Error; err != nil {
			return err
		}
		for _, img := range images {
			files = append(files, img.FilePath, img.ThumbnailPath)
		}

		return tx.Delete(&vehicle.MotorVehicle{}, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return files, nil
}

// ========== Cars ==========

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) Create(ctx context.Context, car *vehicle.Car) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := createBase(tx, &car.MotorVehicle); err != nil {
			return err
		}
		car.VehicleID = car.MotorVehicle.ID
		return tx.Omit("MotorVehicle").Create(car).Error
	}))
}

func (r *CarRepository) FindByID(ctx context.Context, id int64) (*vehicle.Car, error) {
	var car vehicle.Car
	err := r.db.WithContext(ctx).Joins("MotorVehicle").Where("cars.vehicle_id = ?", id).First(&car).Error
	if err != nil {
		return nil, translate(err)
	}
	return &car, nil
}

func (r *CarRepository) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Car, error) {
	var cars []vehicle.Car
	if err := variantQuery(r.db.WithContext(ctx), "cars", filters).Find(&cars).Error; err != nil {
		return nil, translate(err)
	}
	return cars, nil
}

func (r *CarRepository) Update(ctx context.Context, car *vehicle.Car) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := updateBase(tx, &car.MotorVehicle); err != nil {
			return err
		}
		return tx.Model(car).Omit("MotorVehicle").Select("Bodywork", "Transmission").Updates(car).Error
	}))
}

func (r *CarRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	return deleteVariant(ctx, r.db, &vehicle.Car{}, id)
}

func (r *CarRepository) UpdateStatus(ctx context.Context, id int64, status vehicle.Status) error {
	return translate(setVariantStatus(ctx, r.db, "cars", id, status))
}

// ========== Motorcycles ==========

type MotorcycleRepository struct {
	db *gorm.DB
}

func NewMotorcycleRepository(db *gorm.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: db}
}

func (r *MotorcycleRepository) Create(ctx context.Context, m *vehicle.Motorcycle) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := createBase(tx, &m.MotorVehicle); err != nil {
			return err
		}
		m.VehicleID = m.MotorVehicle.ID
		return tx.Omit("MotorVehicle").Create(m).Error
	}))
}

func (r *MotorcycleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Motorcycle, error) {
	var m vehicle.Motorcycle
	err := r.db.WithContext(ctx).Joins("MotorVehicle").Where("motorcycles.vehicle_id = ?", id).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MotorcycleRepository) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Motorcycle, error) {
	var list []vehicle.Motorcycle
	if err := variantQuery(r.db.WithContext(ctx), "motorcycles", filters).Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *MotorcycleRepository) Update(ctx context.Context, m *vehicle.Motorcycle) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := updateBase(tx, &m.MotorVehicle); err != nil {
			return err
		}
		return tx.Model(m).Omit("MotorVehicle").Select(
			"Starter", "FuelSystem", "EngineDisplacement", "Cooling",
			"Style", "EngineType", "Gears", "FrontRearBrake",
		).Updates(m).Error
	}))
}

func (r *MotorcycleRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	return deleteVariant(ctx, r.db, &vehicle.Motorcycle{}, id)
}

func (r *MotorcycleRepository) UpdateStatus(ctx context.Context, id int64, status vehicle.Status) error {
	return translate(setVariantStatus(ctx, r.db, "motorcycles", id, status))
}
