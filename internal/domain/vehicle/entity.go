// internal/domain/vehicle/entity.go
package vehicle

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string
type Type string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusSold     Status = "Sold"

	TypeCar        Type = "car"
	TypeMotorcycle Type = "motorcycle"
)

// Valid reports whether s is one of the catalog statuses
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSold:
		return true
	}
	return false
}

// Valid reports whether t names a vehicle variant
func (t Type) Valid() bool {
	return t == TypeCar || t == TypeMotorcycle
}

// MotorVehicle is the base row shared by cars and motorcycles
type MotorVehicle struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Model                 string          `gorm:"size:100;not null" json:"model"`
	Year                  string          `gorm:"size:10;not null" json:"year"`
	Mileage               int             `gorm:"not null" json:"mileage"`
	FuelType              string          `gorm:"size:20;not null" json:"fuel_type"`
	Color                 string          `gorm:"size:30;not null" json:"color"`
	City                  string          `gorm:"size:100;not null" json:"city"`
	Price                 decimal.Decimal `gorm:"type:decimal(12,2);not null;index" json:"price"`
	AdditionalDescription string          `gorm:"type:text" json:"additional_description,omitempty"`
	Status                Status          `gorm:"size:20;not null;index" json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func (MotorVehicle) TableName() string { return "motor_vehicles" }

// Car extends a MotorVehicle keyed on the same id
type Car struct {
	VehicleID    int64        `gorm:"primaryKey;autoIncrement:false" json:"vehicle_id"`
	Bodywork     string       `gorm:"size:20;not null" json:"bodywork"`
	Transmission string       `gorm:"size:20;not null" json:"transmission"`
	UpdatedAt    time.Time    `json:"-"`
	MotorVehicle MotorVehicle `gorm:"foreignKey:VehicleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Car) TableName() string { return "cars" }

// Motorcycle extends a MotorVehicle keyed on the same id
type Motorcycle struct {
	VehicleID          int64        `gorm:"primaryKey;autoIncrement:false" json:"vehicle_id"`
	Starter            string       `gorm:"size:50;not null" json:"starter"`
	FuelSystem         string       `gorm:"size:50;not null" json:"fuel_system"`
	EngineDisplacement int          `gorm:"not null" json:"engine_displacement"`
	Cooling            string       `gorm:"size:50;not null" json:"cooling"`
	Style              string       `gorm:"size:50;not null" json:"style"`
	EngineType         string       `gorm:"size:50;not null" json:"engine_type"`
	Gears              int          `gorm:"not null" json:"gears"`
	FrontRearBrake     string       `gorm:"size:100;not null" json:"front_rear_brake"`
	UpdatedAt          time.Time    `json:"-"`
	MotorVehicle       MotorVehicle `gorm:"foreignKey:VehicleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Motorcycle) TableName() string { return "motorcycles" }

// CarInfo flattens a car and its base record for responses
type CarInfo struct {
	MotorVehicle
	Bodywork     string `json:"bodywork"`
	Transmission string `json:"transmission"`
}

// MotorcycleInfo flattens a motorcycle and its base record for responses
type MotorcycleInfo struct {
	MotorVehicle
	Starter            string `json:"starter"`
	FuelSystem         string `json:"fuel_system"`
	EngineDisplacement int    `json:"engine_displacement"`
	Cooling            string `json:"cooling"`
	Style              string `json:"style"`
	EngineType         string `json:"engine_type"`
	Gears              int    `json:"gears"`
	FrontRearBrake     string `json:"front_rear_brake"`
}

func (c *Car) Info() CarInfo {
	return CarInfo{
		MotorVehicle: c.MotorVehicle,
		Bodywork:     c.Bodywork,
		Transmission: c.Transmission,
	}
}

func (m *Motorcycle) Info() MotorcycleInfo {
	return MotorcycleInfo{
		MotorVehicle:       m.MotorVehicle,
		Starter:            m.Starter,
		FuelSystem:         m.FuelSystem,
		EngineDisplacement: m.EngineDisplacement,
		Cooling:            m.Cooling,
		Style:              m.Style,
		EngineType:         m.EngineType,
		Gears:              m.Gears,
		FrontRearBrake:     m.FrontRearBrake,
	}
}
