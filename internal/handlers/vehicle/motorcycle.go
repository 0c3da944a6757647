// internal/handlers/vehicle/motorcycle.go
package vehicle

import (
	"net/http"

	"carsales-service/internal/domain/vehicle"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type MotorcycleHandler struct {
	motorcycleService *service.MotorcycleService
}

func NewMotorcycleHandler(motorcycleService *service.MotorcycleService) *MotorcycleHandler {
	return &MotorcycleHandler{motorcycleService: motorcycleService}
}

func (h *MotorcycleHandler) CreateMotorcycle(c *gin.Context) {
	var req vehicle.CreateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.motorcycleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create motorcycle", err)
		return
	}
	response.Success(c, http.StatusCreated, "motorcycle created successfully", result)
}

func (h *MotorcycleHandler) GetMotorcycle(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid motorcycle ID", err)
		return
	}

	result, err := h.motorcycleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "motorcycle not found", err)
		return
	}
	response.Success(c, http.StatusOK, "motorcycle retrieved", result)
}

func (h *MotorcycleHandler) ListMotorcycles(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.motorcycleService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list motorcycles", err)
		return
	}
	response.Success(c, http.StatusOK, "motorcycles retrieved", result)
}

func (h *MotorcycleHandler) UpdateMotorcycle(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid motorcycle ID", err)
		return
	}

	var req vehicle.UpdateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.motorcycleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update motorcycle", err)
		return
	}
	response.Success(c, http.StatusOK, "motorcycle updated successfully", result)
}

func (h *MotorcycleHandler) DeleteMotorcycle(c *gin.Context) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid motorcycle ID", err)
		return
	}

	if err := h.motorcycleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete motorcycle", err)
		return
	}
	response.Success(c, http.StatusOK, "motorcycle deleted successfully", nil)
}

func (h *MotorcycleHandler) ActivateMotorcycle(c *gin.Context) {
	h.setStatus(c, vehicle.StatusActive)
}

func (h *MotorcycleHandler) InactivateMotorcycle(c *gin.Context) {
	h.setStatus(c, vehicle.StatusInactive)
}

func (h *MotorcycleHandler) setStatus(c *gin.Context, status vehicle.Status) {
	id, err := vehicleID(c)
	if err != nil {
		response.ValidationError(c, "invalid motorcycle ID", err)
		return
	}

	result, err := h.motorcycleService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.FromError(c, "failed to update motorcycle status", err)
		return
	}
	response.Success(c, http.StatusOK, "motorcycle status updated", result)
}
