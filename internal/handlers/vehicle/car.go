// internal/handlers/vehicle/car.go
package vehicle

import (
	"net/http"

	"carsales-service/internal/domain/vehicle"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService *service.CarService
}

func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var req vehicle.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.carService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create car", err)
		return
	}
	response.Success(c, http.StatusCreated, "car created successfully", result)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid car ID", err)
		return
	}

	result, err := h.carService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "car not found", err)
		return
	}
	response.Success(c, http.StatusOK, "car retrieved", result)
}

func (h *CarHandler) ListCars(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.carService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list cars", err)
		return
	}
	response.Success(c, http.StatusOK, "cars retrieved", result)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid car ID", err)
		return
	}

	var req vehicle.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.carService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update car", err)
		return
	}
	response.Success(c, http.StatusOK, "car updated successfully", result)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid car ID", err)
		return
	}

	if err := h.carService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete car", err)
		return
	}
	response.Success(c, http.StatusOK, "car deleted successfully", nil)
}

func (h *CarHandler) ActivateCar(c *gin.Context) {
	h.setStatus(c, vehicle.StatusActive)
}

func (h *CarHandler) InactivateCar(c *gin.Context) {
	h.setStatus(c, vehicle.StatusInactive)
}

func (h *CarHandler) setStatus(c *gin.Context, status vehicle.Status) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid car ID", err)
		return
	}

	result, err := h.carService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.FromError(c, "failed to update car status", err)
		return
	}
	response.Success(c, http.StatusOK, "car status updated", result)
}
