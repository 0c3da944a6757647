package vehicle

import "github.com/shopspring/decimal"

// BaseVehicleRequest carries the fields every variant shares on create
type BaseVehicleRequest struct {
	Model                 string          `json:"model" binding:"required,max=100"`
	Year                  string          `json:"year" binding:"required,max=10"`
	Mileage               int             `json:"mileage" binding:"min=0"`
	FuelType              string          `json:"fuel_type" binding:"required,max=20"`
	Color                 string          `json:"color" binding:"required,max=30"`
	City                  string          `json:"city" binding:"required,max=100"`
	Price                 decimal.Decimal `json:"price"`
	AdditionalDescription string          `json:"additional_description"`
}

type CreateCarRequest struct {
	BaseVehicleRequest
	Bodywork     string `json:"bodywork" binding:"required,max=20"`
	Transmission string `json:"transmission" binding:"required,max=20"`
}

type CreateMotorcycleRequest struct {
	BaseVehicleRequest
	Starter            string `json:"starter" binding:"required,max=50"`
	FuelSystem         string `json:"fuel_system" binding:"required,max=50"`
	EngineDisplacement int    `json:"engine_displacement" binding:"required,min=1"`
	Cooling            string `json:"cooling" binding:"required,max=50"`
	Style              string `json:"style" binding:"required,max=50"`
	EngineType         string `json:"engine_type" binding:"required,max=50"`
	Gears              int    `json:"gears" binding:"required,min=1"`
	FrontRearBrake     string `json:"front_rear_brake" binding:"required,max=100"`
}

// UpdateVehicleRequest carries optional base fields
type UpdateVehicleRequest struct {
	Model                 *string          `json:"model" binding:"omitempty,max=100"`
	Year                  *string          `json:"year" binding:"omitempty,max=10"`
	Mileage               *int             `json:"mileage" binding:"omitempty,min=0"`
	FuelType              *string          `json:"fuel_type" binding:"omitempty,max=20"`
	Color                 *string          `json:"color" binding:"omitempty,max=30"`
	City                  *string          `json:"city" binding:"omitempty,max=100"`
	Price                 *decimal.Decimal `json:"price"`
	AdditionalDescription *string          `json:"additional_description"`
	Status                *Status          `json:"status"`
}

type UpdateCarRequest struct {
	UpdateVehicleRequest
	Bodywork     *string `json:"bodywork" binding:"omitempty,max=20"`
	Transmission *string `json:"transmission" binding:"omitempty,max=20"`
}

type UpdateMotorcycleRequest struct {
	UpdateVehicleRequest
	Starter            *string `json:"starter" binding:"omitempty,max=50"`
	FuelSystem         *string `json:"fuel_system" binding:"omitempty,max=50"`
	EngineDisplacement *int    `json:"engine_displacement" binding:"omitempty,min=1"`
	Cooling            *string `json:"cooling" binding:"omitempty,max=50"`
	Style              *string `json:"style" binding:"omitempty,max=50"`
	EngineType         *string `json:"engine_type" binding:"omitempty,max=50"`
	Gears              *int    `json:"gears" binding:"omitempty,min=1"`
	FrontRearBrake     *string `json:"front_rear_brake" binding:"omitempty,max=100"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// ListFilters for listing vehicles, always ordered by price
type ListFilters struct {
	Status   *Status  `form:"status"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	Skip     int      `form:"skip" binding:"omitempty,min=0"`
	Limit    int      `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Apply copies the non-nil fields onto the base record
func (r *UpdateVehicleRequest) Apply(v *MotorVehicle) {
	if r.Model != nil {
		v.Model = *r.Model
	}
	if r.Year != nil {
		v.Year = *r.Year
	}
	if r.Mileage != nil {
		v.Mileage = *r.Mileage
	}
	if r.FuelType != nil {
		v.FuelType = *r.FuelType
	}
	if r.Color != nil {
		v.Color = *r.Color
	}
	if r.City != nil {
		v.City = *r.City
	}
	if r.Price != nil {
		v.Price = *r.Price
	}
	if r.AdditionalDescription != nil {
		v.AdditionalDescription = *r.AdditionalDescription
	}
	if r.Status != nil {
		v.Status = *r.Status
	}
}

// Base builds the base record of a new vehicle, always Active
func (r *BaseVehicleRequest) Base() MotorVehicle {
	return MotorVehicle{
		Model:                 r.Model,
		Year:                  r.Year,
		Mileage:               r.Mileage,
		FuelType:              r.FuelType,
		Color:                 r.Color,
		City:                  r.City,
		Price:                 r.Price,
		AdditionalDescription: r.AdditionalDescription,
		Status:                StatusActive,
	}
}
