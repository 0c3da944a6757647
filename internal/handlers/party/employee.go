// internal/handlers/party/employee.go
package party

import (
	"net/http"

	"carsales-service/internal/domain/party"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/party"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req party.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.employeeService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create employee", err)
		return
	}
	response.Success(c, http.StatusCreated, "employee created successfully", result)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	result, err := h.employeeService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "employee not found", err)
		return
	}
	response.Success(c, http.StatusOK, "employee retrieved", result)
}

// ListEmployees applies one filter: national_id, then name (with status), then status
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var filters party.EmployeeListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.employeeService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list employees", err)
		return
	}
	response.Success(c, http.StatusOK, "employees retrieved", result)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	var req party.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.employeeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update employee", err)
		return
	}
	response.Success(c, http.StatusOK, "employee updated successfully", result)
}

func (h *EmployeeHandler) UpdateEmployeeStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	var req party.UpdateEmployeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.employeeService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to update employee status", err)
		return
	}
	response.Success(c, http.StatusOK, "employee status updated", result)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete employee", err)
		return
	}
	response.Success(c, http.StatusOK, "employee deleted successfully", nil)
}
