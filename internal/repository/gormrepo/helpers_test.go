package gormrepo

import (
	"context"
	"testing"
	"time"

	"carsales-service/internal/db"
	"carsales-service/internal/db/dbtest"
	"carsales-service/internal/domain/image"
	"carsales-service/internal/domain/vehicle"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := dbtest.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newCar(model string, price int64) *vehicle.Car {
	return &vehicle.Car{
		Bodywork:     "Sedan",
		Transmission: "Automatic",
		MotorVehicle: vehicle.MotorVehicle{
			Model:    model,
			Year:     "2022",
			Mileage:  1000,
			FuelType: "Flex",
			Color:    "Black",
			City:     "Recife",
			Price:    decimal.NewFromInt(price),
		},
	}
}

func newMotorcycle(model string, price int64) *vehicle.Motorcycle {
	return &vehicle.Motorcycle{
		Starter:            "Electric",
		FuelSystem:         "Injection",
		EngineDisplacement: 300,
		Cooling:            "Liquid",
		Style:              "Street",
		EngineType:         "Single",
		Gears:              6,
		FrontRearBrake:     "Disc/Disc",
		MotorVehicle: vehicle.MotorVehicle{
			Model:    model,
			Year:     "2023",
			Mileage:  10,
			FuelType: "Gasoline",
			Color:    "Red",
			City:     "Natal",
			Price:    decimal.NewFromInt(price),
		},
	}
}

func seedImages(t *testing.T, repo *ImageRepository, vehicleID int64, n int) []*image.VehicleImage {
	t.Helper()
	imgs := make([]*image.VehicleImage, n)
	for i := range imgs {
		imgs[i] = &image.VehicleImage{
			VehicleType: "car",
			Filename:    "f.jpg",
			FilePath:    "/tmp/f.jpg",
			URL:         "/static/uploads/car/f.jpg",
			FileSize:    10,
		}
	}
	if err := repo.CreateBatch(testCtx(t), vehicleID, imgs, nil); err != nil {
		t.Fatalf("seed images: %v", err)
	}
	return imgs
}
